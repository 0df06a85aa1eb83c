package models

import (
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// AdminUser is the model for the 'admin_users' table.
type AdminUser struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Password holds a bcrypt hash. The plaintext is never kept.
type Password struct {
	Hash string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	return nil
}

// Matches verifies plaintextPassword against the stored bcrypt hash.
// A stored value that is not a bcrypt hash (e.g. a legacy plaintext
// password) never matches.
func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		var prefixErr bcrypt.InvalidHashPrefixError
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) ||
			errors.Is(err, bcrypt.ErrHashTooShort) ||
			errors.As(err, &prefixErr) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
