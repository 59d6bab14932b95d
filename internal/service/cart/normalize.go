package cart

import (
	"bytes"
	"encoding/json"
	"strings"

	"storefront-core/internal/domain"
)

// FlexID accepts a JSON string or number and carries it as an opaque string,
// so catalogs with numeric and string product ids normalize the same way.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

// sellerRef covers the nested seller object shape.
type sellerRef struct {
	ID       FlexID `json:"id"`
	LegacyID FlexID `json:"_id"`
}

// ItemPayload is the tolerant ingestion shape for cart items. Different
// catalog sources expose the seller reference directly, snake_cased, or
// nested under a seller object; Normalize folds all of them into the one
// canonical CartItem the manager works with.
type ItemPayload struct {
	ID          FlexID     `json:"id"`
	Title       string     `json:"title"`
	PriceCents  int64      `json:"priceCents"`
	Quantity    int        `json:"quantity"`
	SellerID    FlexID     `json:"sellerId"`
	SellerSnake FlexID     `json:"seller_id"`
	Seller      *sellerRef `json:"seller"`
}

// Normalize maps an accepted payload shape to the canonical CartItem. The
// manager's internal logic only ever sees this shape.
func Normalize(p ItemPayload) domain.CartItem {
	quantity := p.Quantity
	if quantity < 1 {
		quantity = 1
	}
	return domain.CartItem{
		ID:         string(p.ID),
		Title:      strings.TrimSpace(p.Title),
		PriceCents: p.PriceCents,
		Quantity:   quantity,
		SellerID:   sellerID(p),
	}
}

func sellerID(p ItemPayload) string {
	if p.SellerID != "" {
		return string(p.SellerID)
	}
	if p.SellerSnake != "" {
		return string(p.SellerSnake)
	}
	if p.Seller != nil {
		if p.Seller.ID != "" {
			return string(p.Seller.ID)
		}
		if p.Seller.LegacyID != "" {
			return string(p.Seller.LegacyID)
		}
	}
	return ""
}
