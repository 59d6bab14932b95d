package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront-core/internal/domain"
	productrepo "storefront-core/internal/repository/product"
	"storefront-core/internal/session"
)

type stubCartStore struct{}

func (stubCartStore) Load(_ context.Context, _ string) (*domain.Cart, error) {
	return nil, domain.ErrNotFound
}

func (stubCartStore) Save(_ context.Context, _ domain.Cart) error {
	return nil
}

type stubProducts struct {
	products map[string]domain.Product
}

func (s *stubProducts) Create(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, nil
}

func (s *stubProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *stubProducts) List(_ context.Context, _ productrepo.ListFilter) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

// newTestRouter wires the authenticated routes behind a middleware that
// injects a fixed customer, so handler behavior is exercised without tokens.
func newTestRouter(deps Deps, cust *domain.Customer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := &handlers{deps: deps, logger: log.New(io.Discard, "", 0)}

	auth := router.Group("/", func(c *gin.Context) {
		c.Set(customerKey, cust)
		c.Next()
	})
	{
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
	}
	return router
}

func testDeps(products map[string]domain.Product) Deps {
	return Deps{
		ProductRepo: &stubProducts{products: products},
		Sessions:    session.NewRegistry(stubCartStore{}, nil, nil),
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var resp cartResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cart response: %v", err)
	}
	return resp
}

func TestGetCartStartsEmpty(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodGet, "/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	resp := decodeCart(t, w)
	if len(resp.Items) != 0 || resp.TotalCents != 0 {
		t.Fatalf("expected empty cart, got %+v", resp)
	}
}

func TestAddCartItemFullPayload(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodPost, "/cart/items",
		`{"id":"p1","title":"Mug","priceCents":1299,"quantity":2,"sellerId":"seller-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeCart(t, w)
	if len(resp.Items) != 1 || resp.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", resp)
	}
	if resp.TotalCents != 2598 {
		t.Fatalf("expected total 2598, got %d", resp.TotalCents)
	}
}

func TestAddCartItemResolvesCatalog(t *testing.T) {
	deps := testDeps(map[string]domain.Product{
		"p1": {ID: "p1", Title: "Mug", PriceCents: 500, SellerID: "seller-1"},
	})
	router := newTestRouter(deps, &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodPost, "/cart/items", `{"id":"p1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := decodeCart(t, w)
	if len(resp.Items) != 1 {
		t.Fatalf("unexpected cart: %+v", resp)
	}
	item := resp.Items[0]
	if item.Title != "Mug" || item.PriceCents != 500 || item.SellerID != "seller-1" {
		t.Fatalf("catalog fields not applied: %+v", item)
	}
}

func TestAddCartItemRejectsBadPayload(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodPost, "/cart/items", `{"title":"Mug","priceCents":100}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing id, got %d", w.Code)
	}
}

func TestUpdateAndRemoveCartItem(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	doJSON(t, router, http.MethodPost, "/cart/items",
		`{"id":"p1","title":"Mug","priceCents":100,"quantity":1,"sellerId":"s1"}`)

	w := doJSON(t, router, http.MethodPatch, "/cart/items/p1", `{"quantity":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decodeCart(t, w); resp.Items[0].Quantity != 5 {
		t.Fatalf("expected quantity 5, got %+v", resp.Items)
	}

	w = doJSON(t, router, http.MethodDelete, "/cart/items/p1", "")
	if resp := decodeCart(t, w); len(resp.Items) != 0 {
		t.Fatalf("expected empty cart after removal, got %+v", resp.Items)
	}
}

func TestClearCart(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	doJSON(t, router, http.MethodPost, "/cart/items",
		`{"id":"p1","title":"Mug","priceCents":100,"sellerId":"s1"}`)
	w := doJSON(t, router, http.MethodDelete, "/cart", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if resp := decodeCart(t, w); len(resp.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", resp.Items)
	}
}

func TestCheckoutEmptyCartConflict(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodPost, "/cart/checkout", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "empty_cart") {
		t.Fatalf("expected empty_cart reason, got %s", w.Body.String())
	}
}

func TestCheckoutMultipleSellersConflict(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	doJSON(t, router, http.MethodPost, "/cart/items",
		`{"id":"p1","title":"Mug","priceCents":100,"sellerId":"s1"}`)
	doJSON(t, router, http.MethodPost, "/cart/items",
		`{"id":"p2","title":"Hat","priceCents":200,"sellerId":"s2"}`)

	w := doJSON(t, router, http.MethodPost, "/cart/checkout", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "multiple_sellers") {
		t.Fatalf("expected multiple_sellers reason, got %s", w.Body.String())
	}

	// The refused checkout must leave the cart untouched.
	if resp := decodeCart(t, doJSON(t, router, http.MethodGet, "/cart", "")); len(resp.Items) != 2 {
		t.Fatalf("refused checkout modified the cart: %+v", resp.Items)
	}
}

func TestCheckoutClearsCart(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	doJSON(t, router, http.MethodPost, "/cart/items",
		`{"id":"p1","title":"Mug","priceCents":150,"quantity":2,"sellerId":"s1"}`)

	w := doJSON(t, router, http.MethodPost, "/cart/checkout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Order domain.CartSnapshot `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	if resp.Order.TotalCents != 300 || len(resp.Order.Items) != 1 {
		t.Fatalf("unexpected order snapshot: %+v", resp.Order)
	}

	if after := decodeCart(t, doJSON(t, router, http.MethodGet, "/cart", "")); len(after.Items) != 0 {
		t.Fatalf("expected empty cart after checkout, got %+v", after.Items)
	}
}
