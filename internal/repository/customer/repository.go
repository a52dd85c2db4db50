package customer

import (
	"context"

	"greenleaf-commerce/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, tenantID, id string) (*domain.Customer, error)
}
