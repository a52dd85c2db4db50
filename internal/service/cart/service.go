package cart

import (
	"context"
	"errors"
	"fmt"

	"greenleaf-commerce/internal/db"
	"greenleaf-commerce/internal/domain"
)

type cartRepo interface {
	Snapshot(ctx context.Context, tenantID, customerID, locationID string) (*domain.Cart, error)
	AddItem(ctx context.Context, tenantID, customerID, locationID string, variant domain.Variant, quantity int) (*domain.Cart, error)
	Clear(ctx context.Context, q db.Querier, customerID, locationID string) error
}

type catalogRepo interface {
	GetVariant(ctx context.Context, variantID string) (*domain.Variant, error)
}

// Service is the cart provider: the mutable pre-checkout surface consumed by
// the checkout orchestrator.
type Service struct {
	repo    cartRepo
	catalog catalogRepo
}

func New(repo cartRepo, catalog catalogRepo) *Service {
	return &Service{repo: repo, catalog: catalog}
}

// AddItem adds a variant to the customer's cart at the location, capturing
// the variant's current price.
func (s *Service) AddItem(ctx context.Context, tenantID, customerID, locationID, variantID string, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity", "must be positive")
	}
	variant, err := s.catalog.GetVariant(ctx, variantID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("variantId", "unknown variant")
		}
		return nil, fmt.Errorf("load variant: %w", err)
	}
	if !variant.Active {
		return nil, domain.NewValidationError("variantId", "variant is not for sale")
	}
	return s.repo.AddItem(ctx, tenantID, customerID, locationID, *variant, quantity)
}

// Get returns the customer's cart at the location.
func (s *Service) Get(ctx context.Context, tenantID, customerID, locationID string) (*domain.Cart, error) {
	return s.repo.Snapshot(ctx, tenantID, customerID, locationID)
}
