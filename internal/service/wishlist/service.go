package wishlist

import (
	"context"
	"errors"

	"storefront-core/internal/domain"
	wishlistrepo "storefront-core/internal/repository/wishlist"
)

type Service struct {
	repo        wishlistrepo.Repository
	productRepo productRepo
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo wishlistrepo.Repository, productRepo productRepo) *Service {
	return &Service{repo: repo, productRepo: productRepo}
}

// Add saves the product to the customer's wishlist. Adding an already saved
// product is a no-op.
func (s *Service) Add(ctx context.Context, customerID, productID string) error {
	if productID == "" {
		return errors.New("product id required")
	}
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return errors.New("product not found")
		}
		return err
	}
	return s.repo.Add(ctx, customerID, productID)
}

// Remove drops the product from the wishlist; absent entries are a no-op.
func (s *Service) Remove(ctx context.Context, customerID, productID string) error {
	if productID == "" {
		return errors.New("product id required")
	}
	return s.repo.Remove(ctx, customerID, productID)
}

// List returns the customer's saved products in the order they were added.
func (s *Service) List(ctx context.Context, customerID string) ([]domain.WishlistEntry, error) {
	return s.repo.ListByCustomer(ctx, customerID)
}
