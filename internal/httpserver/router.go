package httpserver

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(deps.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     deps.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &handlers{deps: deps, logger: logger}

	router.POST("/auth/signup", h.signup)
	router.POST("/auth/login", h.login)

	router.GET("/products", h.listProducts)
	router.GET("/products/:id", h.getProduct)

	auth := router.Group("/", authRequired(deps.CustomerSvc))
	{
		auth.POST("/auth/logout", h.logout)
		auth.GET("/me", h.me)

		auth.GET("/cart", h.getCart)
		auth.POST("/cart/items", h.addCartItem)
		auth.PATCH("/cart/items/:id", h.updateCartItem)
		auth.DELETE("/cart/items/:id", h.removeCartItem)
		auth.DELETE("/cart", h.clearCart)
		auth.POST("/cart/checkout", h.checkout)

		auth.GET("/chat/conversations", h.listConversations)
		auth.POST("/chat/conversations", h.startConversation)
		auth.GET("/chat/conversations/:id/messages", h.listMessages)
		auth.POST("/chat/conversations/:id/messages", h.sendMessage)
		auth.GET("/chat/conversations/:id/ws", h.streamMessages)

		auth.GET("/wishlist", h.listWishlist)
		auth.POST("/wishlist", h.addWishlist)
		auth.DELETE("/wishlist/:productId", h.removeWishlist)
	}

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
