package mocks

import (
	"context"

	"github.com/01moynul/taptosell-catalog/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of store.Store.
//
// UpdateProduct and DeleteProduct expect the row (or error) to be configured
// with On(..., ctx, id); the callback is then run against a copy of that row,
// the same way the MySQL store runs it inside its transaction.
type MockStore struct {
	mock.Mock

	// Created, Updated and Deleted record what reached "the database".
	Created []models.Product
	Updated []models.Product
	Deleted []models.Product
}

func (m *MockStore) ListProducts(ctx context.Context, limit int) ([]models.Product, error) {
	args := m.Called(ctx, limit)
	if res := args.Get(0); res != nil {
		return res.([]models.Product), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if res := args.Get(0); res != nil {
		p := *res.(*models.Product)
		return &p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateProduct(ctx context.Context, p *models.Product) (int64, error) {
	args := m.Called(ctx, p)
	id, err := args.Get(0).(int64), args.Error(1)
	if err == nil {
		p.ID = id
		m.Created = append(m.Created, *p)
	}
	return id, err
}

func (m *MockStore) UpdateProduct(ctx context.Context, id int64, apply func(p *models.Product) error) (*models.Product, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	p := *args.Get(0).(*models.Product)
	if err := apply(&p); err != nil {
		return nil, err
	}
	m.Updated = append(m.Updated, p)
	return &p, nil
}

func (m *MockStore) DeleteProduct(ctx context.Context, id int64, before func(p *models.Product) error) (*models.Product, error) {
	args := m.Called(ctx, id)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	p := *args.Get(0).(*models.Product)
	if before != nil {
		if err := before(&p); err != nil {
			return nil, err
		}
	}
	m.Deleted = append(m.Deleted, p)
	return &p, nil
}

func (m *MockStore) GetAdminByUsername(ctx context.Context, username string) (*models.AdminUser, error) {
	args := m.Called(ctx, username)
	if res := args.Get(0); res != nil {
		return res.(*models.AdminUser), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStore) CreateAdmin(ctx context.Context, username, passwordHash string) (int64, error) {
	args := m.Called(ctx, username, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
