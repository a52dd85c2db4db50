package order

import (
	"context"
	"fmt"
	"strings"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
	"greenleaf-commerce/internal/notify"
	"go.uber.org/zap"
)

type orderRepo interface {
	GetForUpdate(ctx context.Context, q db.Querier, tenantID, id string) (*domain.Order, error)
	Items(ctx context.Context, q db.Querier, orderID string) ([]domain.OrderItem, error)
	SetStatus(ctx context.Context, q db.Querier, o *domain.Order) error
	InsertHistory(ctx context.Context, q db.Querier, h *domain.OrderStatusHistory) error
	GetByID(ctx context.Context, tenantID, id string) (*domain.Order, error)
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Order, error)
	ListByLocation(ctx context.Context, tenantID, locationID string) ([]domain.Order, error)
}

type inventoryRepo interface {
	Adjust(ctx context.Context, q db.Querier, variantID, locationID string, delta int) (int, error)
}

// Service applies validated order status transitions. Validation and the
// status write share one transaction with a row lock on the order, so two
// concurrent transitions cannot both pass validation against a stale status.
type Service struct {
	tx        db.TxRunner
	orders    orderRepo
	inventory inventoryRepo
	notifier  notify.Notifier
	logger    *zap.Logger
	now       func() time.Time
}

func New(tx db.TxRunner, orders orderRepo, inventory inventoryRepo, notifier notify.Notifier, logger *zap.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		tx:        tx,
		orders:    orders,
		inventory: inventory,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// UpdateStatus transitions the order to newStatus, applying the transition's
// side effects, and returns the reloaded order with items and full history.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, orderID string, newStatus domain.OrderStatus, actor, note string) (*domain.Order, error) {
	if !newStatus.IsValid() {
		return nil, domain.NewValidationError("status", fmt.Sprintf("unknown status %q", newStatus))
	}
	if strings.TrimSpace(actor) == "" {
		return nil, domain.NewValidationError("actor", "required")
	}

	var occurredAt time.Time
	err := s.tx.RunTx(ctx, func(q db.Querier) error {
		o, err := s.orders.GetForUpdate(ctx, q, tenantID, orderID)
		if err != nil {
			return err
		}
		from := o.Status
		if !from.CanTransitionTo(newStatus) {
			return &domain.InvalidTransitionError{From: string(from), To: string(newStatus)}
		}

		now := s.now()
		o.Status = newStatus
		switch newStatus {
		case domain.OrderStatusConfirmed:
			o.ConfirmedAt = &now
		case domain.OrderStatusCompleted:
			o.CompletedAt = &now
		case domain.OrderStatusCancelled:
			o.CancelledAt = &now
			if err := s.restoreInventory(ctx, q, o); err != nil {
				return err
			}
		case domain.OrderStatusRefunded:
			o.PaymentStatus = domain.PaymentStatusRefunded
		}

		if err := s.orders.SetStatus(ctx, q, o); err != nil {
			return fmt.Errorf("write status: %w", err)
		}
		if err := s.orders.InsertHistory(ctx, q, &domain.OrderStatusHistory{
			OrderID:    orderID,
			FromStatus: &from,
			ToStatus:   newStatus,
			Actor:      actor,
			Note:       note,
		}); err != nil {
			return fmt.Errorf("append status history: %w", err)
		}
		occurredAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	// At-least-once: a publish failure is logged, never unwound. Consumers
	// de-duplicate by (orderID, status, occurredAt).
	if err := s.notifier.PublishOrderStatus(ctx, orderID, newStatus, occurredAt); err != nil {
		s.logger.Warn("status change notification failed",
			zap.String("order_id", orderID),
			zap.String("status", string(newStatus)),
			zap.Error(err))
	}

	return s.orders.GetByID(ctx, tenantID, orderID)
}

// restoreInventory puts each order item's quantity back onto its variant.
func (s *Service) restoreInventory(ctx context.Context, q db.Querier, o *domain.Order) error {
	items, err := s.orders.Items(ctx, q, o.ID)
	if err != nil {
		return fmt.Errorf("load items for restock: %w", err)
	}
	for _, item := range items {
		if _, err := s.inventory.Adjust(ctx, q, item.VariantID, o.LocationID, item.Quantity); err != nil {
			return fmt.Errorf("restore inventory for variant %s: %w", item.VariantID, err)
		}
	}
	return nil
}

// Get returns the order with items and ordered status history.
func (s *Service) Get(ctx context.Context, tenantID, orderID string) (*domain.Order, error) {
	return s.orders.GetByID(ctx, tenantID, orderID)
}

// ListByCustomer returns the customer's orders, newest first.
func (s *Service) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Order, error) {
	return s.orders.ListByCustomer(ctx, tenantID, customerID)
}

// ListByLocation returns a location's orders, newest first.
func (s *Service) ListByLocation(ctx context.Context, tenantID, locationID string) ([]domain.Order, error) {
	return s.orders.ListByLocation(ctx, tenantID, locationID)
}
