package notify

import (
	"context"
	"time"

	"greenleaf-commerce/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	orderStream    = "order-status-events"
	deliveryStream = "delivery-status-events"
)

// RedisNotifier publishes status changes onto Redis streams. XADD is
// append-only, so a retried publish shows up twice; consumers de-duplicate.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedis(addr string) *RedisNotifier {
	return &RedisNotifier{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (n *RedisNotifier) PublishOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus, occurredAt time.Time) error {
	return n.publish(ctx, orderStream, orderID, string(status), occurredAt)
}

func (n *RedisNotifier) PublishDeliveryStatus(ctx context.Context, orderID string, status domain.DeliveryStatus, occurredAt time.Time) error {
	return n.publish(ctx, deliveryStream, orderID, string(status), occurredAt)
}

func (n *RedisNotifier) publish(ctx context.Context, stream, orderID, status string, occurredAt time.Time) error {
	return n.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{
			"order_id":    orderID,
			"status":      status,
			"occurred_at": occurredAt.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
}

// Close releases the underlying Redis connection.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
