package location

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

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Location, error) {
	const q = `
SELECT id::text, tenant_id::text, name, timezone, tax_rate, excise_tax_rate, created_at
FROM locations
WHERE tenant_id = $1 AND id = $2
`
	var loc domain.Location
	err := r.pool.QueryRow(ctx, q, tenantID, id).Scan(
		&loc.ID,
		&loc.TenantID,
		&loc.Name,
		&loc.Timezone,
		&loc.TaxRate,
		&loc.ExciseTaxRate,
		&loc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &loc, nil
}
