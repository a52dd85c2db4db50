package domain

import "time"

// DeliveryStatus tracks the physical handoff of a delivery order. It is a
// separate, forward-only progression decoupled from the order's own status so
// driver/ETA data does not bloat the order record.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusAssigned  DeliveryStatus = "assigned"
	DeliveryStatusPickedUp  DeliveryStatus = "picked_up"
	DeliveryStatusInTransit DeliveryStatus = "in_transit"
	DeliveryStatusArriving  DeliveryStatus = "arriving"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusCancelled DeliveryStatus = "cancelled"
)

// deliveryOrder is the linear forward progression; cancelled is reachable
// from any non-terminal position.
var deliveryOrder = []DeliveryStatus{
	DeliveryStatusPending,
	DeliveryStatusAssigned,
	DeliveryStatusPickedUp,
	DeliveryStatusInTransit,
	DeliveryStatusArriving,
	DeliveryStatusDelivered,
}

func (s DeliveryStatus) position() int {
	for i, st := range deliveryOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether s is a known delivery status.
func (s DeliveryStatus) IsValid() bool {
	return s == DeliveryStatusCancelled || s.position() >= 0
}

// IsTerminal reports whether no further delivery transitions are allowed.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusCancelled
}

// CanTransitionTo allows only the next forward step, or cancellation from any
// non-terminal state.
func (s DeliveryStatus) CanTransitionTo(target DeliveryStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if target == DeliveryStatusCancelled {
		return true
	}
	from, to := s.position(), target.position()
	return from >= 0 && to == from+1
}

func (s DeliveryStatus) String() string {
	return string(s)
}

// Delivery is the physical-handoff record keyed by order.
type Delivery struct {
	ID          string         `json:"id"`
	OrderID     string         `json:"orderId"`
	Status      DeliveryStatus `json:"status"`
	DriverName  string         `json:"driverName,omitempty"`
	ETA         *time.Time     `json:"eta,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeliveredAt *time.Time     `json:"deliveredAt,omitempty"`
}
