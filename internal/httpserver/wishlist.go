package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-core/internal/domain"
)

type addWishlistRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func (h *handlers) listWishlist(c *gin.Context) {
	cust := currentCustomer(c)
	entries, err := h.deps.WishlistSvc.List(c.Request.Context(), cust.ID)
	if err != nil {
		h.logger.Printf("list wishlist: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if entries == nil {
		entries = []domain.WishlistEntry{}
	}
	c.JSON(http.StatusOK, gin.H{"wishlist": entries})
}

func (h *handlers) addWishlist(c *gin.Context) {
	var in addWishlistRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
		return
	}
	cust := currentCustomer(c)
	if err := h.deps.WishlistSvc.Add(c.Request.Context(), cust.ID, in.ProductID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "added"})
}

func (h *handlers) removeWishlist(c *gin.Context) {
	cust := currentCustomer(c)
	if err := h.deps.WishlistSvc.Remove(c.Request.Context(), cust.ID, c.Param("productId")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
