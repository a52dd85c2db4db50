package notify

import (
	"context"
	"time"

	"greenleaf-commerce/internal/domain"
)

// Notifier publishes status-change events for delivery-tracking and customer
// notification consumers. Delivery is at-least-once; consumers de-duplicate
// by (orderID, status, occurredAt).
type Notifier interface {
	PublishOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, occurredAt time.Time) error
	PublishDeliveryStatus(ctx context.Context, orderID string, status domain.DeliveryStatus, occurredAt time.Time) error
}

// Nop discards all notifications. Used when no broker is configured.
type Nop struct{}

func (Nop) PublishOrderStatus(context.Context, string, domain.OrderStatus, time.Time) error {
	return nil
}

func (Nop) PublishDeliveryStatus(context.Context, string, domain.DeliveryStatus, time.Time) error {
	return nil
}
