package delivery

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

const deliveryColumns = `
id::text, order_id::text, status, COALESCE(driver_name, ''), eta, created_at, updated_at, delivered_at`

func scanDelivery(row pgx.Row, d *domain.Delivery) error {
	return row.Scan(&d.ID, &d.OrderID, &d.Status, &d.DriverName, &d.ETA, &d.CreatedAt, &d.UpdatedAt, &d.DeliveredAt)
}

func (r *postgresRepo) Create(ctx context.Context, q db.Querier, orderID string) (*domain.Delivery, error) {
	const stmt = `
INSERT INTO deliveries (order_id, status)
VALUES ($1, 'pending')
RETURNING ` + deliveryColumns

	var d domain.Delivery
	if err := scanDelivery(q.QueryRow(ctx, stmt, orderID), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepo) GetByOrder(ctx context.Context, orderID string) (*domain.Delivery, error) {
	const q = `SELECT ` + deliveryColumns + ` FROM deliveries WHERE order_id = $1`

	var d domain.Delivery
	if err := scanDelivery(r.pool.QueryRow(ctx, q, orderID), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepo) GetForUpdate(ctx context.Context, q db.Querier, orderID string) (*domain.Delivery, error) {
	const stmt = `SELECT ` + deliveryColumns + ` FROM deliveries WHERE order_id = $1 FOR UPDATE`

	var d domain.Delivery
	if err := scanDelivery(q.QueryRow(ctx, stmt, orderID), &d); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresRepo) Update(ctx context.Context, q db.Querier, d *domain.Delivery) error {
	const stmt = `
UPDATE deliveries
SET status = $2,
    driver_name = NULLIF($3, ''),
    eta = $4,
    delivered_at = $5,
    updated_at = now()
WHERE id = $1
RETURNING updated_at
`
	return q.QueryRow(ctx, stmt, d.ID, d.Status, d.DriverName, d.ETA, d.DeliveredAt).Scan(&d.UpdatedAt)
}
