package product

import (
	"context"

	"storefront-core/internal/domain"
)

type ListFilter struct {
	Category string
	SellerID string
}

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Product, error)
}
