package delivery

import (
	"context"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type Repository interface {
	// Create starts a delivery record for an order in the pending state.
	Create(ctx context.Context, q db.Querier, orderID string) (*domain.Delivery, error)
	// GetByOrder returns the delivery record for an order.
	GetByOrder(ctx context.Context, orderID string) (*domain.Delivery, error)
	// GetForUpdate loads the delivery row with a row lock inside the
	// caller's transaction.
	GetForUpdate(ctx context.Context, q db.Querier, orderID string) (*domain.Delivery, error)
	// Update writes the delivery's status and handoff fields.
	Update(ctx context.Context, q db.Querier, d *domain.Delivery) error
}
