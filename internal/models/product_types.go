package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
// Nullable columns are pointers so they scan NULL cleanly and render as empty.
type Product struct {
	ID               int64           `json:"id" db:"id"`
	Name             string          `json:"name" db:"name"`
	Price            decimal.Decimal `json:"price" db:"price"`
	ShortDescription *string         `json:"shortDescription,omitempty" db:"short_description"`
	FullDescription  *string         `json:"fullDescription,omitempty" db:"full_description"`

	// Image is the storage filename inside the upload directory.
	Image *string `json:"image,omitempty" db:"image"`
	// ImageOriginalName is the filename the client submitted. Metadata only.
	ImageOriginalName *string `json:"imageOriginalName,omitempty" db:"image_original_name"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// HasImage reports whether the product references a stored image.
func (p Product) HasImage() bool {
	return p.Image != nil && *p.Image != ""
}

// ImageName returns the stored image filename, or "" when there is none.
func (p Product) ImageName() string {
	if !p.HasImage() {
		return ""
	}
	return *p.Image
}

// StringPtr returns nil for an empty string, otherwise a pointer to s.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
