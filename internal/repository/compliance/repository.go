package compliance

import (
	"context"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// InsertLog appends one audit entry. Append-only; entries are never
	// mutated or deleted.
	InsertLog(ctx context.Context, q db.Querier, entry *domain.ComplianceLog) error
	// PolicyForTenant loads the tenant's regulatory configuration.
	PolicyForTenant(ctx context.Context, tenantID string) (*domain.TenantPolicy, error)
	// DailyPurchasedGrams sums the weight purchased across the customer's
	// completed orders at the tenant since the given instant.
	DailyPurchasedGrams(ctx context.Context, tenantID, customerID string, since time.Time) (decimal.Decimal, error)
	// AggregateDaily computes the report figures for a location over a
	// calendar-day window.
	AggregateDaily(ctx context.Context, locationID string, from, to time.Time) (*domain.DailyReport, error)
	// UpsertDailyReport stores the report, overwriting any prior report for
	// the same (location, date).
	UpsertDailyReport(ctx context.Context, report *domain.DailyReport) error
	// GetDailyReport returns the stored report for (location, date).
	GetDailyReport(ctx context.Context, locationID string, date time.Time) (*domain.DailyReport, error)
}
