package domain

import "time"

// CartItem is the canonical cart entry. Ingestion normalizes every accepted
// payload shape into this struct before the cart manager sees it.
type CartItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	PriceCents int64  `json:"priceCents"`
	Quantity   int    `json:"quantity"`
	SellerID   string `json:"sellerId,omitempty"`
}

// Cart is the persisted form of a session cart. Items keep insertion order
// and hold unique ids; quantity is always >= 1.
type Cart struct {
	OwnerID   string     `json:"ownerId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartSnapshot captures the full cart state at checkout time.
type CartSnapshot struct {
	Items      []CartItem `json:"items"`
	TotalCents int64      `json:"totalCents"`
	CapturedAt time.Time  `json:"capturedAt"`
}
