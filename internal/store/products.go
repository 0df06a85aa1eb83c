package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/taptosell-catalog/internal/models"
)

const productColumns = `id, name, price, short_description, full_description, image, image_original_name, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Price,
		&p.ShortDescription,
		&p.FullDescription,
		&p.Image,
		&p.ImageOriginalName,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *MySQLStore) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products ORDER BY id ASC"
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

func (s *MySQLStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = ?"
	p, err := scanProduct(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return p, nil
}

func (s *MySQLStore) CreateProduct(ctx context.Context, p *models.Product) (int64, error) {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	query := `
		INSERT INTO products
		(name, price, short_description, full_description, image, image_original_name, created_at, updated_at)
		VALUES
		(?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := s.db.ExecContext(ctx, query,
		p.Name,
		p.Price,
		p.ShortDescription,
		p.FullDescription,
		p.Image,
		p.ImageOriginalName,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get new product id: %w", err)
	}
	p.ID = id
	return id, nil
}

// lockProduct reads a product row inside tx with a row lock.
func lockProduct(ctx context.Context, tx *sql.Tx, id int64) (*models.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = ? FOR UPDATE"
	p, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("lock product %d: %w", id, err)
	}
	return p, nil
}

func (s *MySQLStore) UpdateProduct(ctx context.Context, id int64, apply func(p *models.Product) error) (*models.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := lockProduct(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(p); err != nil {
		return nil, err
	}
	p.ID = id
	p.UpdatedAt = time.Now()

	query := `
		UPDATE products
		SET name = ?, price = ?, short_description = ?, full_description = ?,
			image = ?, image_original_name = ?, updated_at = ?
		WHERE id = ?`

	if _, err := tx.ExecContext(ctx, query,
		p.Name,
		p.Price,
		p.ShortDescription,
		p.FullDescription,
		p.Image,
		p.ImageOriginalName,
		p.UpdatedAt,
		id,
	); err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit product %d: %w", id, err)
	}
	return p, nil
}

func (s *MySQLStore) DeleteProduct(ctx context.Context, id int64, before func(p *models.Product) error) (*models.Product, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := lockProduct(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if before != nil {
		if err := before(p); err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("delete product %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit product %d: %w", id, err)
	}
	return p, nil
}
