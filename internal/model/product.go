// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Product represents a single storefront product from the product store.
// The classifier only reads products; it proposes a new Category value but
// never mutates the record itself.
type Product struct {
	CreatedAt   time.Time
	ID          string
	Handle      string
	Title       string
	Description string // empty when the seller left it blank
	Category    string // empty when the product has never been categorized
	Vendor      string
	Price       float64
}

// GenerateID derives a stable identifier for imported products that did not
// come with one (e.g. rows from a Shopify CSV export).
func (p *Product) GenerateID() string {
	data := fmt.Sprintf("%s:%s:%s", p.Handle, p.Title, p.Vendor)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash[:16])
}
