package catalog

import (
	"context"
	"errors"

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

func (r *postgresRepo) GetVariant(ctx context.Context, variantID string) (*domain.Variant, error) {
	const q = `
SELECT v.id::text, v.product_id::text, p.name, v.name, v.sku, v.price, v.weight_grams,
       COALESCE(v.batch_number, ''), COALESCE(v.license_number, ''), v.active, v.created_at
FROM variants v
JOIN products p ON p.id = v.product_id
WHERE v.id = $1
`
	var v domain.Variant
	err := r.pool.QueryRow(ctx, q, variantID).Scan(
		&v.ID,
		&v.ProductID,
		&v.ProductName,
		&v.Name,
		&v.SKU,
		&v.Price,
		&v.WeightGrams,
		&v.BatchNumber,
		&v.LicenseNumber,
		&v.Active,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
