package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-core/internal/domain"
	cartsvc "storefront-core/internal/service/cart"
	"storefront-core/internal/session"
)

type cartResponse struct {
	Items           []domain.CartItem `json:"items"`
	TotalCents      int64             `json:"totalCents"`
	MultipleSellers bool              `json:"multipleSellers"`
}

func (h *handlers) session(c *gin.Context) *session.Session {
	return h.deps.Sessions.Get(c.Request.Context(), currentCustomer(c))
}

func cartView(s *session.Session) cartResponse {
	items := s.Cart.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartResponse{
		Items:           items,
		TotalCents:      s.Cart.Total(),
		MultipleSellers: s.Cart.HasMultipleSellers(),
	}
}

func (h *handlers) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, cartView(h.session(c)))
}

func (h *handlers) addCartItem(c *gin.Context) {
	var payload cartsvc.ItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	item := cartsvc.Normalize(payload)

	// Payloads carrying only an id are resolved against the catalog.
	if item.Title == "" && item.ID != "" {
		product, err := h.deps.ProductRepo.GetByID(c.Request.Context(), item.ID)
		switch {
		case err == nil:
			item.Title = product.Title
			item.PriceCents = product.PriceCents
			item.SellerID = product.SellerID
		case errors.Is(err, domain.ErrNotFound):
			// legacy item; keep the payload as sent
		default:
			h.logger.Printf("resolve product %s: %v", item.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
	}

	sess := h.session(c)
	if err := sess.Cart.AddItem(item, item.Quantity); err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cartView(sess))
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var in updateQuantityRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
		return
	}
	sess := h.session(c)
	sess.Cart.UpdateQuantity(c.Param("id"), *in.Quantity)
	c.JSON(http.StatusOK, cartView(sess))
}

func (h *handlers) removeCartItem(c *gin.Context) {
	sess := h.session(c)
	sess.Cart.RemoveItem(c.Param("id"))
	c.JSON(http.StatusOK, cartView(sess))
}

func (h *handlers) clearCart(c *gin.Context) {
	sess := h.session(c)
	sess.Cart.Clear()
	c.JSON(http.StatusOK, cartView(sess))
}

func (h *handlers) checkout(c *gin.Context) {
	sess := h.session(c)
	snap, err := sess.Cart.Checkout()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMultipleSellers):
			c.JSON(http.StatusConflict, gin.H{
				"error":  "checkout is limited to items from a single seller",
				"reason": "multiple_sellers",
			})
		case errors.Is(err, domain.ErrEmptyCart):
			c.JSON(http.StatusConflict, gin.H{
				"error":  "cart is empty",
				"reason": "empty_cart",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": snap})
}
