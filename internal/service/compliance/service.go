package compliance

import (
	"context"
	"fmt"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type complianceRepo interface {
	InsertLog(ctx context.Context, q db.Querier, entry *domain.ComplianceLog) error
	PolicyForTenant(ctx context.Context, tenantID string) (*domain.TenantPolicy, error)
	DailyPurchasedGrams(ctx context.Context, tenantID, customerID string, since time.Time) (decimal.Decimal, error)
	AggregateDaily(ctx context.Context, locationID string, from, to time.Time) (*domain.DailyReport, error)
	UpsertDailyReport(ctx context.Context, report *domain.DailyReport) error
	GetDailyReport(ctx context.Context, locationID string, date time.Time) (*domain.DailyReport, error)
}

type customerRepo interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Customer, error)
}

type locationRepo interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Location, error)
}

// Service is the compliance checker: the pre-sale gate, the mandatory audit
// write-point, and the daily report generator.
type Service struct {
	repo      complianceRepo
	customers customerRepo
	locations locationRepo
	q         db.Querier
	logger    *zap.Logger
	now       func() time.Time
}

func New(repo complianceRepo, customers customerRepo, locations locationRepo, q db.Querier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		customers: customers,
		locations: locations,
		q:         q,
		logger:    logger,
		now:       time.Now,
	}
}

// Authorize validates age, ID verification and the rolling daily purchase
// limit for a prospective sale of requestedGrams at the given location.
// A denial is itself an auditable event: the denial log entry is written
// before the ComplianceError is returned.
func (s *Service) Authorize(ctx context.Context, tenantID, customerID, locationID string, requestedGrams decimal.Decimal) error {
	policy, err := s.repo.PolicyForTenant(ctx, tenantID)
	if err != nil {
		return fmt.Errorf("load tenant policy: %w", err)
	}
	cust, err := s.customers.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return fmt.Errorf("load customer: %w", err)
	}
	now := s.now()

	if policy.AgeVerificationRequired {
		age, ok := cust.AgeAt(now)
		if !ok {
			return s.deny(ctx, locationID, customerID, domain.NewComplianceError(
				"dob_required", "date of birth required for age verification"))
		}
		if minAge := policy.MinimumAge(); age < minAge {
			return s.deny(ctx, locationID, customerID, domain.NewComplianceError(
				"underage", fmt.Sprintf("customer age %d is below the minimum of %d", age, minAge)))
		}
	}

	if policy.IDReverificationDays > 0 && cust.LastIDVerifiedAt != nil {
		maxAge := time.Duration(policy.IDReverificationDays) * 24 * time.Hour
		if now.Sub(*cust.LastIDVerifiedAt) > maxAge {
			return s.deny(ctx, locationID, customerID, domain.NewComplianceError(
				"id_verification_expired",
				fmt.Sprintf("ID verification older than %d days", policy.IDReverificationDays)))
		}
	}

	if policy.DailyLimitGrams != nil {
		loc, err := s.locations.GetByID(ctx, tenantID, locationID)
		if err != nil {
			return fmt.Errorf("load location: %w", err)
		}
		midnight := localMidnight(now, loc.Local())
		purchased, err := s.repo.DailyPurchasedGrams(ctx, tenantID, customerID, midnight)
		if err != nil {
			return fmt.Errorf("sum daily purchases: %w", err)
		}
		limit := *policy.DailyLimitGrams
		// Reaching the limit exactly is allowed; exceeding it is not.
		if purchased.Add(requestedGrams).GreaterThan(limit) {
			remaining := decimal.Max(limit.Sub(purchased), decimal.Zero)
			return s.deny(ctx, locationID, customerID, domain.NewComplianceError(
				"daily_limit_exceeded",
				fmt.Sprintf("daily limit reached: requested %sg, remaining %sg",
					requestedGrams.String(), remaining.String())))
		}
	}

	return nil
}

// deny records the denial in the compliance log and returns cerr. A failed
// log write is reported through telemetry but does not mask the denial.
func (s *Service) deny(ctx context.Context, locationID, customerID string, cerr *domain.ComplianceError) error {
	entry := &domain.ComplianceLog{
		LocationID: locationID,
		EventType:  domain.ComplianceEventDenial,
		Details: map[string]any{
			"customer_id": customerID,
			"code":        cerr.Code,
			"reason":      cerr.Reason,
		},
	}
	if err := s.repo.InsertLog(ctx, s.q, entry); err != nil {
		s.logger.Error("compliance denial log write failed",
			zap.String("location_id", locationID),
			zap.String("code", cerr.Code),
			zap.Error(err))
	}
	return cerr
}

// LogEvent appends one audit entry. Failures are surfaced to the caller.
func (s *Service) LogEvent(ctx context.Context, locationID, eventType string, details map[string]any, actor, orderID *string) (*domain.ComplianceLog, error) {
	entry := &domain.ComplianceLog{
		LocationID: locationID,
		EventType:  eventType,
		Details:    details,
		Actor:      actor,
		OrderID:    orderID,
	}
	if err := s.repo.InsertLog(ctx, s.q, entry); err != nil {
		return nil, fmt.Errorf("insert compliance log: %w", err)
	}
	return entry, nil
}

// GenerateDailyReport computes and stores the aggregate report for the
// location's calendar day. Idempotent per (location, date): regenerating
// overwrites the prior report.
func (s *Service) GenerateDailyReport(ctx context.Context, tenantID, locationID string, date time.Time) (*domain.DailyReport, error) {
	loc, err := s.locations.GetByID(ctx, tenantID, locationID)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	tz := loc.Local()
	from := localMidnight(date.In(tz), tz)
	to := from.Add(24 * time.Hour)

	report, err := s.repo.AggregateDaily(ctx, locationID, from, to)
	if err != nil {
		return nil, fmt.Errorf("aggregate daily report: %w", err)
	}
	report.ReportDate = from
	if err := s.repo.UpsertDailyReport(ctx, report); err != nil {
		return nil, fmt.Errorf("store daily report: %w", err)
	}
	return report, nil
}

// GetDailyReport returns the stored report for (location, date).
func (s *Service) GetDailyReport(ctx context.Context, locationID string, date time.Time) (*domain.DailyReport, error) {
	return s.repo.GetDailyReport(ctx, locationID, date)
}

func localMidnight(t time.Time, tz *time.Location) time.Time {
	local := t.In(tz)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, tz)
}
