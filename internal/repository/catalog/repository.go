package catalog

import (
	"context"

	"greenleaf-commerce/internal/domain"
)

type Repository interface {
	GetVariant(ctx context.Context, variantID string) (*domain.Variant, error)
}
