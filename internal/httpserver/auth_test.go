package httpserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront-core/internal/domain"
	customersvc "storefront-core/internal/service/customer"
)

type stubLookup struct {
	customer *domain.Customer
}

func (s *stubLookup) LookupByToken(_ context.Context, token string) (*domain.Customer, error) {
	if s.customer == nil || token != "good-token" {
		return nil, customersvc.ErrInvalidToken
	}
	return s.customer, nil
}

func authTestRouter(lookup tokenLookup) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", authRequired(lookup), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": currentCustomer(c).ID})
	})
	return router
}

func TestAuthRequiredMissingToken(t *testing.T) {
	router := authTestRouter(&stubLookup{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRequiredMalformedHeader(t *testing.T) {
	router := authTestRouter(&stubLookup{customer: &domain.Customer{ID: "cust-1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for non-bearer header, got %d", w.Code)
	}
}

func TestAuthRequiredInvalidToken(t *testing.T) {
	router := authTestRouter(&stubLookup{customer: &domain.Customer{ID: "cust-1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAuthRequiredBearerToken(t *testing.T) {
	router := authTestRouter(&stubLookup{customer: &domain.Customer{ID: "cust-1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthRequiredQueryToken(t *testing.T) {
	router := authTestRouter(&stubLookup{customer: &domain.Customer{ID: "cust-1"}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me?access_token=good-token", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for query token, got %d", w.Code)
	}
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Basic abc", ""},
		{"abc", ""},
	}
	for _, tc := range cases {
		if got := bearerToken(tc.header); got != tc.want {
			t.Fatalf("bearerToken(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}
