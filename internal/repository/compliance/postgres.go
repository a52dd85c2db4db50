package compliance

import (
	"context"
	"errors"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) InsertLog(ctx context.Context, q db.Querier, entry *domain.ComplianceLog) error {
	const stmt = `
INSERT INTO compliance_logs (location_id, event_type, details, actor, order_id)
VALUES ($1, $2, COALESCE($3, '{}'::jsonb), $4, $5)
RETURNING id::text, created_at
`
	return q.QueryRow(ctx, stmt,
		entry.LocationID, entry.EventType, entry.Details, entry.Actor, entry.OrderID,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *postgresRepo) PolicyForTenant(ctx context.Context, tenantID string) (*domain.TenantPolicy, error) {
	const q = `
SELECT id::text, age_verification_required, medical_only, id_reverification_days, daily_limit_grams
FROM tenants
WHERE id = $1
`
	var p domain.TenantPolicy
	err := r.pool.QueryRow(ctx, q, tenantID).Scan(
		&p.TenantID,
		&p.AgeVerificationRequired,
		&p.MedicalOnly,
		&p.IDReverificationDays,
		&p.DailyLimitGrams,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) DailyPurchasedGrams(ctx context.Context, tenantID, customerID string, since time.Time) (decimal.Decimal, error) {
	const q = `
SELECT COALESCE(SUM(oi.weight_grams * oi.quantity), 0)
FROM order_items oi
JOIN orders o ON o.id = oi.order_id
WHERE o.tenant_id = $1 AND o.customer_id = $2 AND o.status = 'completed' AND o.completed_at >= $3
`
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, q, tenantID, customerID, since).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *postgresRepo) AggregateDaily(ctx context.Context, locationID string, from, to time.Time) (*domain.DailyReport, error) {
	const q = `
SELECT
	COUNT(*),
	COALESCE(SUM(o.total) FILTER (WHERE o.status NOT IN ('cancelled', 'refunded')), 0),
	COALESCE(SUM(o.tax) FILTER (WHERE o.status NOT IN ('cancelled', 'refunded')), 0),
	COALESCE(SUM(o.excise_tax) FILTER (WHERE o.status NOT IN ('cancelled', 'refunded')), 0),
	COALESCE((
		SELECT SUM(oi.quantity)
		FROM order_items oi
		JOIN orders o2 ON o2.id = oi.order_id
		WHERE o2.location_id = $1 AND o2.created_at >= $2 AND o2.created_at < $3
		  AND o2.status NOT IN ('cancelled', 'refunded')
	), 0),
	COUNT(DISTINCT o.customer_id),
	COUNT(*) FILTER (WHERE o.status = 'cancelled'),
	COALESCE(SUM(o.total) FILTER (WHERE o.status = 'refunded'), 0)
FROM orders o
WHERE o.location_id = $1 AND o.created_at >= $2 AND o.created_at < $3
`
	report := &domain.DailyReport{LocationID: locationID, ReportDate: from}
	err := r.pool.QueryRow(ctx, q, locationID, from, to).Scan(
		&report.TotalOrders,
		&report.TotalRevenue,
		&report.TotalTax,
		&report.TotalExciseTax,
		&report.ItemsSold,
		&report.UniqueCustomers,
		&report.Cancellations,
		&report.RefundedAmount,
	)
	if err != nil {
		return nil, err
	}
	return report, nil
}

func (r *postgresRepo) UpsertDailyReport(ctx context.Context, report *domain.DailyReport) error {
	const stmt = `
INSERT INTO daily_reports (
	location_id, report_date, total_orders, total_revenue, total_tax,
	total_excise_tax, items_sold, unique_customers, cancellations, refunded_amount
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (location_id, report_date) DO UPDATE SET
	total_orders = EXCLUDED.total_orders,
	total_revenue = EXCLUDED.total_revenue,
	total_tax = EXCLUDED.total_tax,
	total_excise_tax = EXCLUDED.total_excise_tax,
	items_sold = EXCLUDED.items_sold,
	unique_customers = EXCLUDED.unique_customers,
	cancellations = EXCLUDED.cancellations,
	refunded_amount = EXCLUDED.refunded_amount,
	generated_at = now()
RETURNING id::text, generated_at
`
	return r.pool.QueryRow(ctx, stmt,
		report.LocationID, report.ReportDate.Format("2006-01-02"),
		report.TotalOrders, report.TotalRevenue, report.TotalTax,
		report.TotalExciseTax, report.ItemsSold, report.UniqueCustomers,
		report.Cancellations, report.RefundedAmount,
	).Scan(&report.ID, &report.GeneratedAt)
}

func (r *postgresRepo) GetDailyReport(ctx context.Context, locationID string, date time.Time) (*domain.DailyReport, error) {
	const q = `
SELECT id::text, location_id::text, report_date, total_orders, total_revenue, total_tax,
       total_excise_tax, items_sold, unique_customers, cancellations, refunded_amount, generated_at
FROM daily_reports
WHERE location_id = $1 AND report_date = $2
`
	var report domain.DailyReport
	err := r.pool.QueryRow(ctx, q, locationID, date.Format("2006-01-02")).Scan(
		&report.ID,
		&report.LocationID,
		&report.ReportDate,
		&report.TotalOrders,
		&report.TotalRevenue,
		&report.TotalTax,
		&report.TotalExciseTax,
		&report.ItemsSold,
		&report.UniqueCustomers,
		&report.Cancellations,
		&report.RefundedAmount,
		&report.GeneratedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &report, nil
}
