package storage

import (
	"context"
	"fmt"

	"github.com/iwanyu/shelf/internal/model"
)

// validateContext ensures a context is usable before touching the database.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return fmt.Errorf("context cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}
	return nil
}

// validateString ensures a required string parameter is non-empty.
func validateString(value, name string) error {
	if value == "" {
		return fmt.Errorf("%s cannot be empty", name)
	}
	return nil
}

// validateProducts checks the boundary invariants on records entering the
// store: id and title are required, everything else is optional.
func validateProducts(products []model.Product) error {
	if len(products) == 0 {
		return fmt.Errorf("products cannot be empty")
	}
	for i, p := range products {
		if p.ID == "" {
			return fmt.Errorf("product %d has no id", i)
		}
		if p.Title == "" {
			return fmt.Errorf("product %d (%s) has no title", i, p.ID)
		}
	}
	return nil
}
