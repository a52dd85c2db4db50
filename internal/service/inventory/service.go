package inventory

import (
	"context"
	"fmt"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type inventoryRepo interface {
	Adjust(ctx context.Context, q db.Querier, variantID, locationID string, delta int) (int, error)
	ListLowStock(ctx context.Context, locationID string) ([]domain.LowStockVariant, error)
}

type auditLogger interface {
	LogEvent(ctx context.Context, locationID, eventType string, details map[string]any, actor, orderID *string) (*domain.ComplianceLog, error)
}

// Service exposes the inventory ledger for administrative adjustments
// (restock) and low-stock reporting. Checkout and cancellation adjust the
// ledger directly inside their own transactions.
type Service struct {
	q     db.Querier
	repo  inventoryRepo
	audit auditLogger
}

func New(q db.Querier, repo inventoryRepo, audit auditLogger) *Service {
	return &Service{q: q, repo: repo, audit: audit}
}

// Adjust applies a signed delta to a variant's on-hand quantity and records
// the adjustment in the compliance log. The resulting quantity is floored at
// zero.
func (s *Service) Adjust(ctx context.Context, variantID, locationID string, delta int, actor string) (int, error) {
	if delta == 0 {
		return 0, domain.NewValidationError("delta", "must be non-zero")
	}
	quantity, err := s.repo.Adjust(ctx, s.q, variantID, locationID, delta)
	if err != nil {
		return 0, err
	}
	if _, err := s.audit.LogEvent(ctx, locationID, domain.ComplianceEventAdjustment, map[string]any{
		"variant_id":         variantID,
		"delta":              delta,
		"resulting_quantity": quantity,
	}, &actor, nil); err != nil {
		return quantity, fmt.Errorf("adjustment applied but audit log failed: %w", err)
	}
	return quantity, nil
}

// ListLowStock returns active variants at or below their threshold.
func (s *Service) ListLowStock(ctx context.Context, locationID string) ([]domain.LowStockVariant, error) {
	return s.repo.ListLowStock(ctx, locationID)
}
