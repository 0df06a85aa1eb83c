package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/01moynul/taptosell-catalog/internal/models"
	"github.com/01moynul/taptosell-catalog/internal/store"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, so callers cannot tell them apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticate checks username and password against the admin_users table.
// Any other returned error means the lookup itself failed.
func Authenticate(ctx context.Context, admins store.AdminStore, username, password string) (*models.AdminUser, error) {
	admin, err := admins.GetAdminByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	hash := models.Password{Hash: admin.PasswordHash}
	match, err := hash.Matches(password)
	if err != nil {
		return nil, fmt.Errorf("verify password for %q: %w", username, err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// EnsureAdmin creates the admin account if the username is not taken yet.
// It reports whether an account was created.
func EnsureAdmin(ctx context.Context, admins store.AdminStore, username, password string) (bool, error) {
	var hash models.Password
	if err := hash.Set(password); err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := admins.CreateAdmin(ctx, username, hash.Hash); err != nil {
		if errors.Is(err, store.ErrAdminExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
