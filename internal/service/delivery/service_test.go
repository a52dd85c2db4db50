package delivery

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type stubTxRunner struct{}

func (stubTxRunner) RunTx(_ context.Context, fn func(q db.Querier) error) error {
	return fn(nil)
}

type stubDeliveryRepo struct {
	delivery *domain.Delivery
	updated  *domain.Delivery
}

func (s *stubDeliveryRepo) GetByOrder(_ context.Context, _ string) (*domain.Delivery, error) {
	return s.delivery, nil
}

func (s *stubDeliveryRepo) GetForUpdate(_ context.Context, _ db.Querier, _ string) (*domain.Delivery, error) {
	d := *s.delivery
	return &d, nil
}

func (s *stubDeliveryRepo) Update(_ context.Context, _ db.Querier, d *domain.Delivery) error {
	s.updated = d
	return nil
}

type stubNotifier struct {
	statuses []domain.DeliveryStatus
	err      error
}

func (s *stubNotifier) PublishOrderStatus(context.Context, string, domain.OrderStatus, time.Time) error {
	return nil
}

func (s *stubNotifier) PublishDeliveryStatus(_ context.Context, _ string, status domain.DeliveryStatus, _ time.Time) error {
	s.statuses = append(s.statuses, status)
	return s.err
}

var testNow = time.Date(2025, time.June, 1, 17, 30, 0, 0, time.UTC)

func newTestService(status domain.DeliveryStatus) (*Service, *stubDeliveryRepo, *stubNotifier) {
	repo := &stubDeliveryRepo{delivery: &domain.Delivery{ID: "del-1", OrderID: "ord-1", Status: status}}
	n := &stubNotifier{}
	svc := New(stubTxRunner{}, repo, n, nil)
	svc.now = func() time.Time { return testNow }
	return svc, repo, n
}

func TestUpdateStatusAssignsDriver(t *testing.T) {
	svc, repo, n := newTestService(domain.DeliveryStatusPending)

	eta := testNow.Add(45 * time.Minute)
	d, err := svc.UpdateStatus(context.Background(), "ord-1", domain.DeliveryStatusAssigned, "Riley", &eta)
	require.NoError(t, err)

	assert.Equal(t, domain.DeliveryStatusAssigned, d.Status)
	assert.Equal(t, "Riley", d.DriverName)
	require.NotNil(t, d.ETA)
	assert.True(t, d.ETA.Equal(eta))
	assert.NotNil(t, repo.updated)
	assert.Equal(t, []domain.DeliveryStatus{domain.DeliveryStatusAssigned}, n.statuses)
}

func TestUpdateStatusDeliveredStampsTime(t *testing.T) {
	svc, _, _ := newTestService(domain.DeliveryStatusArriving)

	d, err := svc.UpdateStatus(context.Background(), "ord-1", domain.DeliveryStatusDelivered, "", nil)
	require.NoError(t, err)
	require.NotNil(t, d.DeliveredAt)
	assert.True(t, d.DeliveredAt.Equal(testNow))
}

func TestUpdateStatusRejectsSkippedStep(t *testing.T) {
	svc, repo, n := newTestService(domain.DeliveryStatusPending)

	_, err := svc.UpdateStatus(context.Background(), "ord-1", domain.DeliveryStatusInTransit, "", nil)
	var terr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "pending", terr.From)
	assert.Equal(t, "in_transit", terr.To)
	assert.Nil(t, repo.updated)
	assert.Empty(t, n.statuses)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newTestService(domain.DeliveryStatusPending)

	_, err := svc.UpdateStatus(context.Background(), "ord-1", domain.DeliveryStatus("teleported"), "", nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestUpdateStatusCancelFromTransit(t *testing.T) {
	svc, _, _ := newTestService(domain.DeliveryStatusInTransit)

	d, err := svc.UpdateStatus(context.Background(), "ord-1", domain.DeliveryStatusCancelled, "", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatusCancelled, d.Status)
}

func TestUpdateStatusSurvivesNotifyFailure(t *testing.T) {
	svc, _, n := newTestService(domain.DeliveryStatusPending)
	n.err = errors.New("redis down")

	d, err := svc.UpdateStatus(context.Background(), "ord-1", domain.DeliveryStatusAssigned, "", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DeliveryStatusAssigned, d.Status)
}
