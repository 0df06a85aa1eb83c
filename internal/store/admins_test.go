package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAdminByUsername(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, password_hash, created_at FROM admin_users WHERE username = ?")).
		WithArgs("admin").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "created_at"}).
			AddRow(1, "admin", "$2a$10$hash", time.Now()))

	admin, err := s.GetAdminByUsername(context.Background(), "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, "$2a$10$hash", admin.PasswordHash)
}

func TestGetAdminByUsername_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("FROM admin_users").WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := s.GetAdminByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAdminNotFound)
}

func TestCreateAdmin(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO admin_users")).
		WithArgs("admin", "$2a$10$hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(4, 1))

	id, err := s.CreateAdmin(context.Background(), "admin", "$2a$10$hash")
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}

func TestCreateAdmin_Duplicate(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO admin_users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'admin'"})

	_, err := s.CreateAdmin(context.Background(), "admin", "x")
	assert.ErrorIs(t, err, ErrAdminExists)
}
