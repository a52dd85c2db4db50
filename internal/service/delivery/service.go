package delivery

import (
	"context"
	"fmt"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"greenleaf-commerce/internal/notify"
	"go.uber.org/zap"
)

type deliveryRepo interface {
	GetByOrder(ctx context.Context, orderID string) (*domain.Delivery, error)
	GetForUpdate(ctx context.Context, q db.Querier, orderID string) (*domain.Delivery, error)
	Update(ctx context.Context, q db.Querier, d *domain.Delivery) error
}

// Service drives the physical-handoff progression for delivery orders,
// independent of the order's own status machine.
type Service struct {
	tx       db.TxRunner
	repo     deliveryRepo
	notifier notify.Notifier
	logger   *zap.Logger
	now      func() time.Time
}

func New(tx db.TxRunner, repo deliveryRepo, notifier notify.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tx:       tx,
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// UpdateStatus advances the delivery to newStatus, optionally recording the
// driver and ETA. Only the next forward step is allowed, plus cancellation
// from any non-terminal state.
func (s *Service) UpdateStatus(ctx context.Context, orderID string, newStatus domain.DeliveryStatus, driverName string, eta *time.Time) (*domain.Delivery, error) {
	if !newStatus.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown delivery status %q", newStatus))
	}

	var updated *domain.Delivery
	var occurredAt time.Time
	err := s.tx.RunTx(ctx, func(q db.Querier) error {
		d, err := s.repo.GetForUpdate(ctx, q, orderID)
		if err != nil {
			return err
		}
		if !d.Status.CanTransitionTo(newStatus) {
			return &domain.InvalidTransitionError{From: string(d.Status), To: string(newStatus)}
		}

		now := s.now()
		d.Status = newStatus
		if driverName != "" {
			d.DriverName = driverName
		}
		if eta != nil {
			d.ETA = eta
		}
		if newStatus == domain.DeliveryStatusDelivered {
			d.DeliveredAt = &now
		}
		if err := s.repo.Update(ctx, q, d); err != nil {
			return fmt.Errorf("write delivery status: %w", err)
		}
		updated = d
		occurredAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.notifier.PublishDeliveryStatus(ctx, orderID, newStatus, occurredAt); err != nil {
		s.logger.Warn("delivery status notification failed",
			zap.String("order_id", orderID),
			zap.String("status", string(newStatus)),
			zap.Error(err))
	}

	return updated, nil
}

// Get returns the delivery record for an order.
func (s *Service) Get(ctx context.Context, orderID string) (*domain.Delivery, error) {
	return s.repo.GetByOrder(ctx, orderID)
}
