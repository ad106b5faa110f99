package engine

import (
	"context"

	"github.com/iwanyu/shelf/internal/model"
)

// AppliedUpdate records one chunk write the mock store received.
type AppliedUpdate struct {
	Category string
	IDs      []string
}

// MockStore is an in-memory ProductStore for engine tests.
type MockStore struct {
	// AffectedFn overrides the affected-row count reported for a chunk;
	// nil means every chunk reports full success.
	AffectedFn func(update AppliedUpdate) int64
	UpdateErr  error
	ListErr    error
	Products   []model.Product
	Updates    []AppliedUpdate
}

// ListProductsPage returns the configured products a page at a time.
func (m *MockStore) ListProductsPage(_ context.Context, offset, limit int) ([]model.Product, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	if offset >= len(m.Products) {
		return nil, nil
	}
	end := min(offset+limit, len(m.Products))
	return m.Products[offset:end], nil
}

// UpdateCategoryByIDs records the chunk and applies it to the in-memory
// products so that repeated runs observe prior writes.
func (m *MockStore) UpdateCategoryByIDs(_ context.Context, category string, ids []string) (int64, error) {
	if m.UpdateErr != nil {
		return 0, m.UpdateErr
	}

	update := AppliedUpdate{Category: category, IDs: append([]string(nil), ids...)}
	m.Updates = append(m.Updates, update)

	if m.AffectedFn != nil {
		return m.AffectedFn(update), nil
	}

	idSet := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var affected int64
	for i := range m.Products {
		if _, ok := idSet[m.Products[i].ID]; ok {
			m.Products[i].Category = category
			affected++
		}
	}
	return affected, nil
}
