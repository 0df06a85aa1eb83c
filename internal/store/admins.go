package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/taptosell-catalog/internal/models"
	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

func (s *MySQLStore) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	query := "SELECT id, username, password_hash, created_at FROM admin_users WHERE username = ?"

	var admin models.AdminUser
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&admin.ID,
		&admin.Username,
		&admin.PasswordHash,
		&admin.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("get admin %q: %w", username, err)
	}
	return &admin, nil
}

func (s *MySQLStore) CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	query := "INSERT INTO admin_users (username, password_hash, created_at) VALUES (?, ?, ?)"

	result, err := s.db.ExecContext(ctx, query, username, passwordHash, time.Now())
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return 0, ErrAdminExists
		}
		return 0, fmt.Errorf("insert admin %q: %w", username, err)
	}
	return result.LastInsertId()
}
