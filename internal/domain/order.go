package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReadyForPickup OrderStatus = "ready_for_pickup"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
	OrderStatusRefunded       OrderStatus = "refunded"
)

// orderTransitions is the closed adjacency map of allowed status changes.
// Terminal states have no outbound edges.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReadyForPickup, OrderStatusOutForDelivery, OrderStatusCancelled},
	OrderStatusReadyForPickup: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusOutForDelivery: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:      {OrderStatusRefunded},
	OrderStatusCancelled:      {},
	OrderStatusRefunded:       {},
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether s has no outbound transitions.
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether the transition s -> target is allowed.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// PaymentStatus tracks the payment lifecycle independently of order status.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// FulfillmentType is how an order reaches the customer.
type FulfillmentType string

const (
	FulfillmentPickup   FulfillmentType = "pickup"
	FulfillmentDelivery FulfillmentType = "delivery"
)

// IsValid reports whether f is a known fulfillment type.
func (f FulfillmentType) IsValid() bool {
	return f == FulfillmentPickup || f == FulfillmentDelivery
}

// Order is an immutable business transaction. Financial fields and line items
// are frozen at creation; later catalog edits never affect existing orders.
type Order struct {
	ID              string               `json:"id"`
	OrderNumber     string               `json:"orderNumber"`
	TenantID        string               `json:"-"`
	LocationID      string               `json:"locationId"`
	CustomerID      string               `json:"customerId"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	Tax             decimal.Decimal      `json:"tax"`
	ExciseTax       decimal.Decimal      `json:"exciseTax"`
	Discount        decimal.Decimal      `json:"discount"`
	Total           decimal.Decimal      `json:"total"`
	FulfillmentType FulfillmentType      `json:"fulfillmentType"`
	Status          OrderStatus          `json:"status"`
	PaymentStatus   PaymentStatus        `json:"paymentStatus"`
	ContactName     string               `json:"contactName"`
	ContactEmail    string               `json:"contactEmail"`
	ContactPhone    string               `json:"contactPhone,omitempty"`
	DeliveryAddress string               `json:"deliveryAddress,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	ConfirmedAt     *time.Time           `json:"confirmedAt,omitempty"`
	CompletedAt     *time.Time           `json:"completedAt,omitempty"`
	CancelledAt     *time.Time           `json:"cancelledAt,omitempty"`
	Items           []OrderItem          `json:"items,omitempty"`
	StatusHistory   []OrderStatusHistory `json:"statusHistory,omitempty"`
}

// OrderItem is a frozen snapshot of one cart line at the moment of purchase.
// Display names and regulatory identifiers are denormalized so later catalog
// edits cannot change what the customer bought.
type OrderItem struct {
	ID            string          `json:"id"`
	OrderID       string          `json:"orderId"`
	ProductID     string          `json:"productId"`
	VariantID     string          `json:"variantId"`
	ProductName   string          `json:"productName"`
	VariantName   string          `json:"variantName"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
	WeightGrams   decimal.Decimal `json:"weightGrams"`
	BatchNumber   string          `json:"batchNumber,omitempty"`
	LicenseNumber string          `json:"licenseNumber,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// OrderStatusHistory is one append-only audit row per status transition.
// FromStatus is nil for the initial entry written at checkout.
type OrderStatusHistory struct {
	ID         string       `json:"id"`
	OrderID    string       `json:"orderId"`
	FromStatus *OrderStatus `json:"fromStatus,omitempty"`
	ToStatus   OrderStatus  `json:"toStatus"`
	Actor      string       `json:"actor"`
	Note       string       `json:"note,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}
