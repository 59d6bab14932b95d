package wishlist

import (
	"context"

	"storefront-core/internal/domain"
)

type Repository interface {
	Add(ctx context.Context, customerID, productID string) error
	Remove(ctx context.Context, customerID, productID string) error
	ListByCustomer(ctx context.Context, customerID string) ([]domain.WishlistEntry, error)
}
