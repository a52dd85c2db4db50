package customer

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

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, tenant_id::text, name, email, COALESCE(phone, ''), date_of_birth, last_id_verified_at, created_at
FROM customers
WHERE tenant_id = $1 AND id = $2
`
	var c domain.Customer
	err := r.pool.QueryRow(ctx, q, tenantID, id).Scan(
		&c.ID,
		&c.TenantID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.DateOfBirth,
		&c.LastIDVerifiedAt,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}
