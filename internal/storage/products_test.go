package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iwanyu/shelf/internal/model"
)

func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err, "Failed to create storage")

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("Failed to migrate: %v", err)
	}

	t.Cleanup(func() { _ = store.Close() })
	return store
}

func createTestProducts(count int) []model.Product {
	products := make([]model.Product, count)
	for i := 0; i < count; i++ {
		products[i] = model.Product{
			Handle:      fmt.Sprintf("product-%03d", i+1),
			Title:       fmt.Sprintf("Product %d", i+1),
			Description: fmt.Sprintf("Description for product %d", i+1),
			Category:    "General",
			Vendor:      "Test Vendor",
			Price:       float64(i+1) * 9.99,
		}
		products[i].ID = products[i].GenerateID()
	}
	return products
}

func TestSQLiteStorage_InsertProducts(t *testing.T) {
	tests := []struct {
		name      string
		products  []model.Product
		wantErr   bool
		wantCount int
	}{
		{
			name:      "insert new products",
			products:  createTestProducts(3),
			wantCount: 3,
		},
		{
			name:      "empty slice is valid",
			products:  nil,
			wantCount: 0,
		},
		{
			name: "missing id rejected",
			products: []model.Product{
				{Title: "No ID"},
			},
			wantErr: true,
		},
		{
			name: "missing title rejected",
			products: []model.Product{
				{ID: "abc123"},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestStorage(t)
			ctx := context.Background()

			err := store.InsertProducts(ctx, tt.products)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			count, err := store.CountProducts(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestSQLiteStorage_InsertProducts_UpsertReplaces(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	products := createTestProducts(2)
	require.NoError(t, store.InsertProducts(ctx, products))

	products[0].Category = "Electronics"
	products[0].Price = 199.99
	require.NoError(t, store.InsertProducts(ctx, products[:1]))

	count, err := store.CountProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "re-importing a product should not duplicate it")

	page, err := store.ListProductsPage(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 2)

	for _, p := range page {
		if p.ID == products[0].ID {
			assert.Equal(t, "Electronics", p.Category)
			assert.InDelta(t, 199.99, p.Price, 0.001)
		}
	}
}

func TestSQLiteStorage_ListProductsPage(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.InsertProducts(ctx, createTestProducts(5)))

	first, err := store.ListProductsPage(ctx, 0, 2)
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := store.ListProductsPage(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, second, 2)

	last, err := store.ListProductsPage(ctx, 4, 2)
	require.NoError(t, err)
	assert.Len(t, last, 1, "final page should be short")

	empty, err := store.ListProductsPage(ctx, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)

	seen := make(map[string]bool)
	for _, p := range append(append(first, second...), last...) {
		assert.False(t, seen[p.ID], "product %s returned twice across pages", p.ID)
		seen[p.ID] = true
	}
	assert.Len(t, seen, 5)
}

func TestSQLiteStorage_ListProductsPage_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.ListProductsPage(ctx, 0, 0)
	assert.Error(t, err, "zero limit should be rejected")

	_, err = store.ListProductsPage(ctx, -1, 10)
	assert.Error(t, err, "negative offset should be rejected")
}

func TestSQLiteStorage_ListProductsPage_NullableColumns(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	p := model.Product{Title: "Bare Product"}
	p.ID = p.GenerateID()
	require.NoError(t, store.InsertProducts(ctx, []model.Product{p}))

	page, err := store.ListProductsPage(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)

	got := page[0]
	assert.Equal(t, "Bare Product", got.Title)
	assert.Empty(t, got.Handle)
	assert.Empty(t, got.Description)
	assert.Empty(t, got.Category)
	assert.Empty(t, got.Vendor)
	assert.Zero(t, got.Price)
	assert.False(t, got.CreatedAt.IsZero(), "created_at should be set by the database")
}

func TestSQLiteStorage_UpdateCategoryByIDs(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	products := createTestProducts(4)
	require.NoError(t, store.InsertProducts(ctx, products))

	affected, err := store.UpdateCategoryByIDs(ctx, "Shoes", []string{products[0].ID, products[2].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	// An unknown id updates nothing but is not an error here.
	affected, err = store.UpdateCategoryByIDs(ctx, "Shoes", []string{"does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	page, err := store.ListProductsPage(ctx, 0, 10)
	require.NoError(t, err)

	shoes := 0
	for _, p := range page {
		if p.Category == "Shoes" {
			shoes++
		}
	}
	assert.Equal(t, 2, shoes)
}

func TestSQLiteStorage_UpdateCategoryByIDs_Validation(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	_, err := store.UpdateCategoryByIDs(ctx, "", []string{"abc"})
	assert.Error(t, err, "empty category should be rejected")

	_, err = store.UpdateCategoryByIDs(ctx, "Shoes", nil)
	assert.Error(t, err, "empty id list should be rejected")
}

func TestSQLiteStorage_CategoryDistribution(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	products := createTestProducts(6)
	products[0].Category = "Electronics"
	products[1].Category = "Electronics"
	products[2].Category = "Electronics"
	products[3].Category = "Shoes"
	products[4].Category = "Shoes"
	products[5].Category = ""
	for i := range products {
		products[i].ID = products[i].GenerateID()
	}
	require.NoError(t, store.InsertProducts(ctx, products))

	counts, err := store.CategoryDistribution(ctx)
	require.NoError(t, err)
	require.Len(t, counts, 3)

	assert.Equal(t, model.CategoryCount{Category: "Electronics", Count: 3}, counts[0])
	assert.Equal(t, model.CategoryCount{Category: "Shoes", Count: 2}, counts[1])
	assert.Equal(t, model.CategoryCount{Category: "", Count: 1}, counts[2], "uncategorized products group under the empty string")
}

func TestSQLiteStorage_CategoryDistribution_Empty(t *testing.T) {
	store := createTestStorage(t)

	counts, err := store.CategoryDistribution(context.Background())
	require.NoError(t, err)
	assert.Empty(t, counts)
}
