package engine

import (
	"context"

	"github.com/iwanyu/shelf/internal/model"
)

// ProductStore is the minimal product-store surface the engine depends on.
// Reads are paged; a page shorter than the requested limit is the last one.
// UpdateCategoryByIDs returns the number of rows actually changed so the
// engine can verify every chunk landed.
type ProductStore interface {
	ListProductsPage(ctx context.Context, offset, limit int) ([]model.Product, error)
	UpdateCategoryByIDs(ctx context.Context, category string, ids []string) (int64, error)
}
