package domain

import "time"

// WishlistEntry links a customer to a saved product.
type WishlistEntry struct {
	CustomerID string    `json:"-"`
	ProductID  string    `json:"productId"`
	Title      string    `json:"title"`
	PriceCents int64     `json:"priceCents"`
	SellerID   string    `json:"sellerId,omitempty"`
	AddedAt    time.Time `json:"addedAt"`
}
