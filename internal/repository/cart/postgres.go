package cart

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

func (r *postgresRepo) Snapshot(ctx context.Context, tenantID, customerID, locationID string) (*domain.Cart, error) {
	const cartQuery = `
SELECT id::text, tenant_id::text, customer_id::text, location_id::text, created_at
FROM carts
WHERE tenant_id = $1 AND customer_id = $2 AND location_id = $3
`
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, cartQuery, tenantID, customerID, locationID).Scan(
		&cart.ID,
		&cart.TenantID,
		&cart.CustomerID,
		&cart.LocationID,
		&cart.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const itemsQuery = `
SELECT id::text, cart_id::text, variant_id::text, quantity, unit_price, created_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.VariantID,
			&item.Quantity,
			&item.UnitPrice,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &cart, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, tenantID, customerID, locationID string, variant domain.Variant, quantity int) (*domain.Cart, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const ensureCart = `
INSERT INTO carts (tenant_id, customer_id, location_id)
VALUES ($1, $2, $3)
ON CONFLICT (customer_id, location_id) DO UPDATE SET customer_id = EXCLUDED.customer_id
RETURNING id::text
`
	var cartID string
	if err := tx.QueryRow(ctx, ensureCart, tenantID, customerID, locationID).Scan(&cartID); err != nil {
		return nil, err
	}

	const upsertItem = `
INSERT INTO cart_items (cart_id, variant_id, quantity, unit_price)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, variant_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
`
	if _, err := tx.Exec(ctx, upsertItem, cartID, variant.ID, quantity, variant.Price); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.Snapshot(ctx, tenantID, customerID, locationID)
}

func (r *postgresRepo) Clear(ctx context.Context, q db.Querier, customerID, locationID string) error {
	const del = `
DELETE FROM cart_items
WHERE cart_id IN (
	SELECT id FROM carts WHERE customer_id = $1 AND location_id = $2
)
`
	_, err := q.Exec(ctx, del, customerID, locationID)
	return err
}
