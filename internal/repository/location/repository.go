package location

import (
	"context"

	"greenleaf-commerce/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Location, error)
}
