package inventory

import (
	"context"
	"errors"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Adjust(ctx context.Context, q db.Querier, variantID, locationID string, delta int) (int, error) {
	// Single conditional update, clamped at zero. The row lock taken by
	// UPDATE serializes concurrent adjustments of the same variant.
	const stmt = `
UPDATE inventory
SET quantity = GREATEST(quantity + $3, 0),
    updated_at = now()
WHERE variant_id = $1 AND location_id = $2
RETURNING quantity
`
	var quantity int
	err := q.QueryRow(ctx, stmt, variantID, locationID, delta).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return quantity, nil
}

func (r *postgresRepo) ListLowStock(ctx context.Context, locationID string) ([]domain.LowStockVariant, error) {
	const q = `
SELECT v.id::text, v.product_id::text, p.name, v.name, v.sku, v.price, v.weight_grams,
       COALESCE(v.batch_number, ''), COALESCE(v.license_number, ''), v.active, v.created_at,
       i.quantity, i.low_stock_threshold
FROM inventory i
JOIN variants v ON v.id = i.variant_id
JOIN products p ON p.id = v.product_id
WHERE i.location_id = $1 AND v.active AND i.quantity <= i.low_stock_threshold
ORDER BY i.quantity ASC
`
	rows, err := r.pool.Query(ctx, q, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LowStockVariant
	for rows.Next() {
		var lv domain.LowStockVariant
		if err := rows.Scan(
			&lv.Variant.ID,
			&lv.Variant.ProductID,
			&lv.Variant.ProductName,
			&lv.Variant.Name,
			&lv.Variant.SKU,
			&lv.Variant.Price,
			&lv.Variant.WeightGrams,
			&lv.Variant.BatchNumber,
			&lv.Variant.LicenseNumber,
			&lv.Variant.Active,
			&lv.Variant.CreatedAt,
			&lv.Quantity,
			&lv.Threshold,
		); err != nil {
			return nil, err
		}
		result = append(result, lv)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Get(ctx context.Context, variantID, locationID string) (*domain.InventoryRecord, error) {
	const q = `
SELECT id::text, variant_id::text, location_id::text, quantity, low_stock_threshold, updated_at
FROM inventory
WHERE variant_id = $1 AND location_id = $2
`
	var rec domain.InventoryRecord
	err := r.pool.QueryRow(ctx, q, variantID, locationID).Scan(
		&rec.ID,
		&rec.VariantID,
		&rec.LocationID,
		&rec.Quantity,
		&rec.LowStockThreshold,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}
