package cart

import (
	"context"

	"storefront-core/internal/domain"
)

// Repository is the cart persistence collaborator. The in-memory manager is
// the source of truth for a running session; this store only has to survive
// reloads, so Save always replaces the whole cart.
type Repository interface {
	Load(ctx context.Context, ownerID string) (*domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}
