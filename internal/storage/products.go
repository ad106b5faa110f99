package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/iwanyu/shelf/internal/model"
)

// productColumns is the select list every product read shares.
const productColumns = `id, handle, title, description, category, vendor, price, created_at`

// ListProductsPage returns one page of products ordered by insertion time
// then id, so repeated paging walks the table deterministically. A page
// shorter than limit is the last one.
func (s *SQLiteStorage) ListProductsPage(ctx context.Context, offset, limit int) ([]model.Product, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	if offset < 0 {
		return nil, fmt.Errorf("offset cannot be negative, got %d", offset)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		ORDER BY created_at, id
		LIMIT ? OFFSET ?`, productColumns)

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, err
	}

	slog.Debug("retrieved product page", "offset", offset, "count", len(products))
	return products, nil
}

// CountProducts returns the total number of products in the store.
func (s *SQLiteStorage) CountProducts(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// CategoryDistribution reports how many products carry each raw category
// value, most populous first. NULL and empty categories group together
// under the empty string.
func (s *SQLiteStorage) CategoryDistribution(ctx context.Context) ([]model.CategoryCount, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT COALESCE(category, ''), COUNT(*) AS n
		FROM products
		GROUP BY COALESCE(category, '')
		ORDER BY n DESC, category`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query category distribution: %w", err)
	}
	defer rows.Close()

	var counts []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category counts: %w", err)
	}

	return counts, nil
}

// UpdateCategoryByIDs sets the category for every listed product in a single
// statement and reports how many rows actually changed. Callers verify the
// count against the chunk size; this method does not.
func (s *SQLiteStorage) UpdateCategoryByIDs(ctx context.Context, category string, ids []string) (int64, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(category, "category"); err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, fmt.Errorf("ids cannot be empty")
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, 0, len(ids)+1)
	args = append(args, category)
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf(`UPDATE products SET category = ? WHERE id IN (%s)`, placeholders)
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to update product categories: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	slog.Debug("updated product categories", "category", category, "requested", len(ids), "affected", affected)
	return affected, nil
}

// InsertProducts upserts products by id. Existing rows are replaced so that
// repeated imports of the same CSV converge instead of duplicating.
func (s *SQLiteStorage) InsertProducts(ctx context.Context, products []model.Product) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	if err := validateProducts(products); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO products (id, handle, title, description, category, vendor, price)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			handle = excluded.handle,
			title = excluded.title,
			description = excluded.description,
			category = excluded.category,
			vendor = excluded.vendor,
			price = excluded.price`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range products {
		_, err := stmt.ExecContext(ctx,
			p.ID,
			nullIfEmpty(p.Handle),
			p.Title,
			nullIfEmpty(p.Description),
			nullIfEmpty(p.Category),
			nullIfEmpty(p.Vendor),
			p.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit products: %w", err)
	}

	slog.Debug("inserted products", "count", len(products))
	return nil
}

func scanProducts(rows *sql.Rows) ([]model.Product, error) {
	var products []model.Product
	for rows.Next() {
		var (
			p                                    model.Product
			handle, description, category, vendor sql.NullString
			price                                sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &handle, &p.Title, &description, &category, &vendor, &price, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p.Handle = handle.String
		p.Description = description.String
		p.Category = category.String
		p.Vendor = vendor.String
		p.Price = price.Float64
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
