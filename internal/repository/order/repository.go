package order

import (
	"context"
	"time"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type Repository interface {
	// Create persists the order row inside the caller's transaction and
	// fills the generated ID and creation timestamp.
	Create(ctx context.Context, q db.Querier, o *domain.Order) error
	// InsertItems persists the frozen line-item snapshots. The order row
	// must already exist.
	InsertItems(ctx context.Context, q db.Querier, items []domain.OrderItem) error
	// InsertHistory appends one status-history row.
	InsertHistory(ctx context.Context, q db.Querier, h *domain.OrderStatusHistory) error
	// NextSequence atomically increments and returns the per-(location, day)
	// order-number counter.
	NextSequence(ctx context.Context, q db.Querier, locationID string, day time.Time) (int, error)
	// GetByID loads the order with its items and history, history ordered
	// oldest first.
	GetByID(ctx context.Context, tenantID, id string) (*domain.Order, error)
	// GetForUpdate loads the bare order row with a row lock, so a status
	// transition validates against the current status within its own
	// transaction.
	GetForUpdate(ctx context.Context, q db.Querier, tenantID, id string) (*domain.Order, error)
	// Items loads the order's line items inside the caller's transaction.
	Items(ctx context.Context, q db.Querier, orderID string) ([]domain.OrderItem, error)
	// SetStatus writes the order's status, lifecycle timestamps and payment
	// status inside the caller's transaction.
	SetStatus(ctx context.Context, q db.Querier, o *domain.Order) error
	// ListByCustomer returns the customer's orders, newest first, without
	// items or history.
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]domain.Order, error)
	// ListByLocation returns a location's orders, newest first, without
	// items or history.
	ListByLocation(ctx context.Context, tenantID, locationID string) ([]domain.Order, error)
}
