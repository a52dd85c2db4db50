package order

import (
	"context"
	"errors"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &postgresRepo{pool: pool, logger: logger}
}

const orderColumns = `
id::text, order_number, tenant_id::text, location_id::text, customer_id::text,
subtotal, tax, excise_tax, discount, total,
fulfillment_type, status, payment_status,
contact_name, contact_email, COALESCE(contact_phone, ''), COALESCE(delivery_address, ''),
created_at, confirmed_at, completed_at, cancelled_at`

func scanOrder(row pgx.Row, o *domain.Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.TenantID, &o.LocationID, &o.CustomerID,
		&o.Subtotal, &o.Tax, &o.ExciseTax, &o.Discount, &o.Total,
		&o.FulfillmentType, &o.Status, &o.PaymentStatus,
		&o.ContactName, &o.ContactEmail, &o.ContactPhone, &o.DeliveryAddress,
		&o.CreatedAt, &o.ConfirmedAt, &o.CompletedAt, &o.CancelledAt,
	)
}

func (r *postgresRepo) Create(ctx context.Context, q db.Querier, o *domain.Order) error {
	const stmt = `
INSERT INTO orders (
	order_number, tenant_id, location_id, customer_id,
	subtotal, tax, excise_tax, discount, total,
	fulfillment_type, status, payment_status,
	contact_name, contact_email, contact_phone, delivery_address
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NULLIF($15, ''), NULLIF($16, ''))
RETURNING id::text, created_at
`
	return q.QueryRow(ctx, stmt,
		o.OrderNumber, o.TenantID, o.LocationID, o.CustomerID,
		o.Subtotal, o.Tax, o.ExciseTax, o.Discount, o.Total,
		o.FulfillmentType, o.Status, o.PaymentStatus,
		o.ContactName, o.ContactEmail, o.ContactPhone, o.DeliveryAddress,
	).Scan(&o.ID, &o.CreatedAt)
}

func (r *postgresRepo) InsertItems(ctx context.Context, q db.Querier, items []domain.OrderItem) error {
	const stmt = `
INSERT INTO order_items (
	order_id, product_id, variant_id, product_name, variant_name,
	unit_price, quantity, line_total, weight_grams, batch_number, license_number
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''))
RETURNING id::text, created_at
`
	for i := range items {
		item := &items[i]
		if err := q.QueryRow(ctx, stmt,
			item.OrderID, item.ProductID, item.VariantID, item.ProductName, item.VariantName,
			item.UnitPrice, item.Quantity, item.LineTotal, item.WeightGrams,
			item.BatchNumber, item.LicenseNumber,
		).Scan(&item.ID, &item.CreatedAt); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresRepo) InsertHistory(ctx context.Context, q db.Querier, h *domain.OrderStatusHistory) error {
	const stmt = `
INSERT INTO order_status_history (order_id, from_status, to_status, actor, note)
VALUES ($1, $2, $3, $4, NULLIF($5, ''))
RETURNING id::text, created_at
`
	var from *string
	if h.FromStatus != nil {
		s := string(*h.FromStatus)
		from = &s
	}
	return q.QueryRow(ctx, stmt, h.OrderID, from, h.ToStatus, h.Actor, h.Note).
		Scan(&h.ID, &h.CreatedAt)
}

func (r *postgresRepo) NextSequence(ctx context.Context, q db.Querier, locationID string, day time.Time) (int, error) {
	// Atomic per-(location, day) counter; safe under concurrent checkouts.
	const stmt = `
INSERT INTO order_number_sequences (location_id, seq_date, seq)
VALUES ($1, $2, 1)
ON CONFLICT (location_id, seq_date)
DO UPDATE SET seq = order_number_sequences.seq + 1
RETURNING seq
`
	var seq int
	if err := q.QueryRow(ctx, stmt, locationID, day.Format("2006-01-02")).Scan(&seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, tenantID, id string) (*domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND id = $2`

	var o domain.Order
	if err := scanOrder(r.pool.QueryRow(ctx, q, tenantID, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	items, err := r.Items(ctx, r.pool, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items

	history, err := r.history(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.StatusHistory = history

	return &o, nil
}

func (r *postgresRepo) GetForUpdate(ctx context.Context, q db.Querier, tenantID, id string) (*domain.Order, error) {
	const stmt = `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND id = $2 FOR UPDATE`

	var o domain.Order
	if err := scanOrder(q.QueryRow(ctx, stmt, tenantID, id), &o); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresRepo) Items(ctx context.Context, q db.Querier, orderID string) ([]domain.OrderItem, error) {
	const stmt = `
SELECT id::text, order_id::text, product_id::text, variant_id::text, product_name, variant_name,
       unit_price, quantity, line_total, weight_grams,
       COALESCE(batch_number, ''), COALESCE(license_number, ''), created_at
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := q.Query(ctx, stmt, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.VariantID,
			&item.ProductName, &item.VariantName,
			&item.UnitPrice, &item.Quantity, &item.LineTotal, &item.WeightGrams,
			&item.BatchNumber, &item.LicenseNumber, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *postgresRepo) history(ctx context.Context, orderID string) ([]domain.OrderStatusHistory, error) {
	const stmt = `
SELECT id::text, order_id::text, from_status, to_status, actor, COALESCE(note, ''), created_at
FROM order_status_history
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, stmt, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.OrderStatusHistory
	for rows.Next() {
		var h domain.OrderStatusHistory
		var from *string
		if err := rows.Scan(&h.ID, &h.OrderID, &from, &h.ToStatus, &h.Actor, &h.Note, &h.CreatedAt); err != nil {
			return nil, err
		}
		if from != nil {
			s := domain.OrderStatus(*from)
			h.FromStatus = &s
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

func (r *postgresRepo) SetStatus(ctx context.Context, q db.Querier, o *domain.Order) error {
	const stmt = `
UPDATE orders
SET status = $2,
    payment_status = $3,
    confirmed_at = $4,
    completed_at = $5,
    cancelled_at = $6
WHERE id = $1
`
	tag, err := q.Exec(ctx, stmt, o.ID, o.Status, o.PaymentStatus, o.ConfirmedAt, o.CompletedAt, o.CancelledAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at DESC`
	return r.list(ctx, q, tenantID, customerID)
}

func (r *postgresRepo) ListByLocation(ctx context.Context, tenantID, locationID string) ([]domain.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE tenant_id = $1 AND location_id = $2 ORDER BY created_at DESC`
	return r.list(ctx, q, tenantID, locationID)
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := scanOrder(rows, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}
