// Package session holds the per-customer state managers. The cart and the
// conversation store are session-scoped singletons: any handler may read
// them, but only their managers mutate them.
package session

import (
	"context"
	"log"
	"sync"

	"storefront-core/internal/domain"
	cartsvc "storefront-core/internal/service/cart"
	chatsvc "storefront-core/internal/service/chat"
	"github.com/google/uuid"
)

// Session bundles the state managers of one signed-in customer.
type Session struct {
	ID   string
	User *domain.Customer
	Cart *cartsvc.Manager
	Chat *chatsvc.Manager
}

// Registry creates and caches sessions keyed by customer id. A session is
// built on first use (loading the stored cart) and dropped on logout.
type Registry struct {
	store    cartsvc.Store
	delivery chatsvc.Delivery
	logger   *log.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(store cartsvc.Store, delivery chatsvc.Delivery, logger *log.Logger) *Registry {
	return &Registry{
		store:    store,
		delivery: delivery,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Get returns the customer's session, creating it on first use.
func (r *Registry) Get(ctx context.Context, user *domain.Customer) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[user.ID]; ok {
		return s
	}
	s := &Session{
		ID:   uuid.NewString(),
		User: user,
		Cart: cartsvc.NewManager(ctx, r.store, user, r.saveErrorLogger(user.ID)),
		Chat: chatsvc.NewManager(user, r.delivery),
	}
	r.sessions[user.ID] = s
	return s
}

// Drop closes and forgets the customer's session. Pending cart saves are
// flushed before the manager stops.
func (r *Registry) Drop(customerID string) {
	r.mu.Lock()
	s, ok := r.sessions[customerID]
	if ok {
		delete(r.sessions, customerID)
	}
	r.mu.Unlock()
	if ok {
		s.Cart.Close()
	}
}

func (r *Registry) saveErrorLogger(customerID string) func(error) {
	return func(err error) {
		if r.logger != nil {
			r.logger.Printf("cart persistence for customer %s: %v", customerID, err)
		}
	}
}
