package compliance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type stubComplianceRepo struct {
	policy    *domain.TenantPolicy
	policyErr error
	purchased decimal.Decimal
	since     time.Time
	logs      []*domain.ComplianceLog
	insertErr error

	aggregate    *domain.DailyReport
	aggregateErr error
	aggFrom      time.Time
	aggTo        time.Time
	upserted     *domain.DailyReport
	stored       *domain.DailyReport
}

func (s *stubComplianceRepo) InsertLog(_ context.Context, _ db.Querier, entry *domain.ComplianceLog) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.logs = append(s.logs, entry)
	return nil
}

func (s *stubComplianceRepo) PolicyForTenant(_ context.Context, _ string) (*domain.TenantPolicy, error) {
	return s.policy, s.policyErr
}

func (s *stubComplianceRepo) DailyPurchasedGrams(_ context.Context, _, _ string, since time.Time) (decimal.Decimal, error) {
	s.since = since
	return s.purchased, nil
}

func (s *stubComplianceRepo) AggregateDaily(_ context.Context, _ string, from, to time.Time) (*domain.DailyReport, error) {
	s.aggFrom, s.aggTo = from, to
	return s.aggregate, s.aggregateErr
}

func (s *stubComplianceRepo) UpsertDailyReport(_ context.Context, report *domain.DailyReport) error {
	s.upserted = report
	return nil
}

func (s *stubComplianceRepo) GetDailyReport(_ context.Context, _ string, _ time.Time) (*domain.DailyReport, error) {
	return s.stored, nil
}

type stubCustomerRepo struct {
	customer *domain.Customer
	err      error
}

func (s *stubCustomerRepo) GetByID(_ context.Context, _, _ string) (*domain.Customer, error) {
	return s.customer, s.err
}

type stubLocationRepo struct {
	location *domain.Location
	err      error
}

func (s *stubLocationRepo) GetByID(_ context.Context, _, _ string) (*domain.Location, error) {
	return s.location, s.err
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func timePtr(t time.Time) *time.Time { return &t }

var testNow = time.Date(2025, time.June, 15, 14, 0, 0, 0, time.UTC)

func newTestService(repo *stubComplianceRepo, cust *domain.Customer, loc *domain.Location) (*Service, *stubComplianceRepo) {
	if loc == nil {
		loc = &domain.Location{ID: "loc-1", Timezone: "UTC"}
	}
	svc := New(repo, &stubCustomerRepo{customer: cust}, &stubLocationRepo{location: loc}, nil, nil)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func adultCustomer() *domain.Customer {
	return &domain.Customer{
		ID:               "cust-1",
		DateOfBirth:      timePtr(time.Date(1995, time.March, 1, 0, 0, 0, 0, time.UTC)),
		LastIDVerifiedAt: timePtr(testNow.Add(-24 * time.Hour)),
	}
}

func TestAuthorizeAllows(t *testing.T) {
	repo := &stubComplianceRepo{
		policy:    &domain.TenantPolicy{AgeVerificationRequired: true, IDReverificationDays: 90, DailyLimitGrams: decPtr("28.5")},
		purchased: dec("10"),
	}
	svc, repo := newTestService(repo, adultCustomer(), nil)

	err := svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("7"))
	require.NoError(t, err)
	assert.Empty(t, repo.logs)
}

func TestAuthorizeDOBRequired(t *testing.T) {
	repo := &stubComplianceRepo{policy: &domain.TenantPolicy{AgeVerificationRequired: true}}
	cust := adultCustomer()
	cust.DateOfBirth = nil
	svc, repo := newTestService(repo, cust, nil)

	err := svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("1"))
	var cerr *domain.ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "dob_required", cerr.Code)

	// Denial is itself audited.
	require.Len(t, repo.logs, 1)
	assert.Equal(t, domain.ComplianceEventDenial, repo.logs[0].EventType)
	assert.Equal(t, "dob_required", repo.logs[0].Details["code"])
}

func TestAuthorizeUnderage(t *testing.T) {
	repo := &stubComplianceRepo{policy: &domain.TenantPolicy{AgeVerificationRequired: true}}
	cust := adultCustomer()
	cust.DateOfBirth = timePtr(time.Date(2005, time.July, 1, 0, 0, 0, 0, time.UTC)) // 19 at testNow
	svc, _ := newTestService(repo, cust, nil)

	err := svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("1"))
	var cerr *domain.ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "underage", cerr.Code)
}

func TestAuthorizeMedicalMinimumAge(t *testing.T) {
	repo := &stubComplianceRepo{policy: &domain.TenantPolicy{AgeVerificationRequired: true, MedicalOnly: true}}
	cust := adultCustomer()
	cust.DateOfBirth = timePtr(time.Date(2005, time.July, 1, 0, 0, 0, 0, time.UTC)) // 19: under 21, over 18
	svc, _ := newTestService(repo, cust, nil)

	err := svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("1"))
	require.NoError(t, err)
}

func TestAuthorizeIDVerificationExpired(t *testing.T) {
	repo := &stubComplianceRepo{policy: &domain.TenantPolicy{AgeVerificationRequired: true, IDReverificationDays: 90}}
	cust := adultCustomer()
	cust.LastIDVerifiedAt = timePtr(testNow.Add(-91 * 24 * time.Hour))
	svc, _ := newTestService(repo, cust, nil)

	err := svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("1"))
	var cerr *domain.ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "id_verification_expired", cerr.Code)
}

func TestAuthorizeIDVerificationWithinWindow(t *testing.T) {
	repo := &stubComplianceRepo{policy: &domain.TenantPolicy{AgeVerificationRequired: true, IDReverificationDays: 90}}
	cust := adultCustomer()
	cust.LastIDVerifiedAt = timePtr(testNow.Add(-90 * 24 * time.Hour))
	svc, _ := newTestService(repo, cust, nil)

	require.NoError(t, svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("1")))
}

func TestAuthorizeDailyLimitBoundary(t *testing.T) {
	// Exactly reaching the limit is allowed; one hundredth of a gram over is not.
	repo := &stubComplianceRepo{
		policy:    &domain.TenantPolicy{DailyLimitGrams: decPtr("28.5")},
		purchased: dec("21.5"),
	}
	svc, _ := newTestService(repo, adultCustomer(), nil)

	require.NoError(t, svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("7")))

	repo2 := &stubComplianceRepo{
		policy:    &domain.TenantPolicy{DailyLimitGrams: decPtr("28.5")},
		purchased: dec("21.5"),
	}
	svc2, repo2 := newTestService(repo2, adultCustomer(), nil)

	err := svc2.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("7.01"))
	var cerr *domain.ComplianceError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "daily_limit_exceeded", cerr.Code)
	require.Len(t, repo2.logs, 1)
}

func TestAuthorizeDailyLimitUsesLocalMidnight(t *testing.T) {
	repo := &stubComplianceRepo{
		policy:    &domain.TenantPolicy{DailyLimitGrams: decPtr("28.5")},
		purchased: decimal.Zero,
	}
	loc := &domain.Location{ID: "loc-1", Timezone: "America/New_York"}
	svc, repo := newTestService(repo, adultCustomer(), loc)

	require.NoError(t, svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("1")))

	// 2025-06-15 14:00 UTC is 10:00 EDT; the window starts at local midnight.
	tz, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	want := time.Date(2025, time.June, 15, 0, 0, 0, 0, tz)
	assert.True(t, repo.since.Equal(want), "want %s got %s", want, repo.since)
}

func TestAuthorizeDenialSurvivesLogFailure(t *testing.T) {
	repo := &stubComplianceRepo{
		policy:    &domain.TenantPolicy{AgeVerificationRequired: true},
		insertErr: errors.New("db down"),
	}
	cust := adultCustomer()
	cust.DateOfBirth = nil
	svc, _ := newTestService(repo, cust, nil)

	err := svc.Authorize(context.Background(), "t1", "cust-1", "loc-1", dec("1"))
	var cerr *domain.ComplianceError
	require.ErrorAs(t, err, &cerr)
}

func TestLogEvent(t *testing.T) {
	repo := &stubComplianceRepo{}
	svc, repo := newTestService(repo, adultCustomer(), nil)

	actor := "staff-1"
	orderID := "ord-1"
	entry, err := svc.LogEvent(context.Background(), "loc-1", domain.ComplianceEventStatusChange,
		map[string]any{"from": "pending", "to": "confirmed"}, &actor, &orderID)
	require.NoError(t, err)
	assert.Equal(t, domain.ComplianceEventStatusChange, entry.EventType)
	require.Len(t, repo.logs, 1)

	repo.insertErr = errors.New("db down")
	_, err = svc.LogEvent(context.Background(), "loc-1", domain.ComplianceEventSale, nil, nil, nil)
	require.Error(t, err)
}

func TestGenerateDailyReport(t *testing.T) {
	repo := &stubComplianceRepo{
		aggregate: &domain.DailyReport{LocationID: "loc-1", TotalOrders: 3, TotalRevenue: dec("318.27")},
	}
	loc := &domain.Location{ID: "loc-1", Timezone: "America/New_York"}
	svc, repo := newTestService(repo, adultCustomer(), loc)

	date := time.Date(2025, time.June, 15, 18, 0, 0, 0, time.UTC)
	report, err := svc.GenerateDailyReport(context.Background(), "t1", "loc-1", date)
	require.NoError(t, err)

	tz, _ := time.LoadLocation("America/New_York")
	wantFrom := time.Date(2025, time.June, 15, 0, 0, 0, 0, tz)
	assert.True(t, repo.aggFrom.Equal(wantFrom), "from: want %s got %s", wantFrom, repo.aggFrom)
	assert.True(t, repo.aggTo.Equal(wantFrom.Add(24*time.Hour)), "to: got %s", repo.aggTo)

	require.NotNil(t, repo.upserted)
	assert.True(t, report.ReportDate.Equal(wantFrom))
	assert.Equal(t, 3, report.TotalOrders)
}
