package inventory

import (
	"context"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type Repository interface {
	// Adjust applies a signed quantity delta atomically, flooring the result
	// at zero, and returns the resulting on-hand quantity. Runs against the
	// caller's Querier so checkout and cancellation can adjust inside their
	// transaction.
	Adjust(ctx context.Context, q db.Querier, variantID, locationID string, delta int) (int, error)
	// ListLowStock returns active variants at or below their threshold.
	ListLowStock(ctx context.Context, locationID string) ([]domain.LowStockVariant, error)
	// Get returns the inventory record for a variant at a location.
	Get(ctx context.Context, variantID, locationID string) (*domain.InventoryRecord, error)
}
