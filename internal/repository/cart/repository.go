package cart

import (
	"context"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type Repository interface {
	// Snapshot returns the customer's cart at the given location with its
	// items and captured unit prices. Returns ErrNotFound when no cart exists.
	Snapshot(ctx context.Context, tenantID, customerID, locationID string) (*domain.Cart, error)
	// AddItem upserts a cart line, capturing the variant's current price on
	// first add.
	AddItem(ctx context.Context, tenantID, customerID, locationID string, variant domain.Variant, quantity int) (*domain.Cart, error)
	// Clear removes the cart's items inside the caller's transaction.
	Clear(ctx context.Context, q db.Querier, customerID, locationID string) error
}
