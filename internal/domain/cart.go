package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is the mutable pre-checkout container. It belongs to exactly one
// customer and one selling location and is cleared on successful checkout.
type Cart struct {
	ID         string     `json:"id"`
	TenantID   string     `json:"-"`
	CustomerID string     `json:"customerId"`
	LocationID string     `json:"locationId"`
	CreatedAt  time.Time  `json:"createdAt"`
	Items      []CartItem `json:"items,omitempty"`
}

// CartItem references a sellable variant with the unit price captured at
// add-time.
type CartItem struct {
	ID        string          `json:"id"`
	CartID    string          `json:"cartId"`
	VariantID string          `json:"variantId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Subtotal sums unit price times quantity over all items.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
