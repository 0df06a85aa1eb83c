package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/01moynul/taptosell-catalog/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrAdminNotFound   = errors.New("admin user not found")
	ErrAdminExists     = errors.New("admin user already exists")
)

// ProductStore persists catalog entries.
type ProductStore interface {
	// ListProducts returns at most limit rows ordered by id; limit <= 0 returns all rows.
	ListProducts(ctx context.Context, limit int) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) (int64, error)
	// UpdateProduct locks the row, lets apply mutate it and writes it back in
	// one transaction. An error from apply aborts the update.
	UpdateProduct(ctx context.Context, id int64, apply func(p *models.Product) error) (*models.Product, error)
	// DeleteProduct locks the row, calls before and deletes it in one
	// transaction. An error from before aborts the delete.
	DeleteProduct(ctx context.Context, id int64, before func(p *models.Product) error) (*models.Product, error)
}

// AdminStore reads admin accounts.
type AdminStore interface {
	GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error)
	CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error)
}

// Store is everything the HTTP layer needs from persistence.
type Store interface {
	ProductStore
	AdminStore
	Ping(ctx context.Context) error
}

// MySQLStore implements Store on a database/sql pool.
type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
