package cart

import (
	"context"
	"errors"
	"sync"
	"time"

	"storefront-core/internal/domain"
)

// Store is the persistence collaborator for session carts.
type Store interface {
	Load(ctx context.Context, ownerID string) (*domain.Cart, error)
	Save(ctx context.Context, cart domain.Cart) error
}

const saveTimeout = 5 * time.Second

// Manager owns one session's cart. Mutations apply to memory immediately and
// hand a snapshot to a background worker that writes it to the Store; a save
// failure is reported through the error callback and never rolls the
// in-memory state back. The in-memory cart stays the source of truth for the
// session even while the store is unavailable.
type Manager struct {
	store       Store
	user        *domain.Customer
	onSaveError func(error)

	mu     sync.Mutex
	items  []domain.CartItem
	closed bool

	saves   chan []domain.CartItem
	done    chan struct{}
	pending sync.WaitGroup
}

// NewManager loads the stored cart for the given customer and starts the
// persist worker. A nil user yields a guest manager that refuses AddItem. A
// missing stored cart means an empty one; any other load error goes to the
// callback and the session starts empty.
func NewManager(ctx context.Context, store Store, user *domain.Customer, onSaveError func(error)) *Manager {
	m := &Manager{
		store:       store,
		user:        user,
		onSaveError: onSaveError,
		saves:       make(chan []domain.CartItem, 16),
		done:        make(chan struct{}),
	}
	if store != nil && user != nil {
		stored, err := store.Load(ctx, user.ID)
		switch {
		case err == nil:
			m.items = stored.Items
		case errors.Is(err, domain.ErrNotFound):
			// first session for this customer
		default:
			m.reportError(err)
		}
	}
	go m.persistLoop()
	return m
}

// AddItem appends the item or, when the id is already present, increments its
// quantity by the requested amount. Requested quantities below 1 count as 1.
func (m *Manager) AddItem(item domain.CartItem, quantity int) error {
	if m.user == nil {
		return domain.ErrUnauthenticated
	}
	if item.ID == "" {
		return errors.New("item id required")
	}
	if item.PriceCents < 0 {
		return errors.New("price must not be negative")
	}
	if quantity < 1 {
		quantity = 1
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i].Quantity += quantity
			m.enqueueSave()
			return nil
		}
	}
	item.Quantity = quantity
	m.items = append(m.items, item)
	m.enqueueSave()
	return nil
}

// RemoveItem drops the entry with the given id. Absent ids are a no-op, not
// an error.
func (m *Manager) RemoveItem(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id {
			m.items = append(m.items[:i], m.items[i+1:]...)
			m.enqueueSave()
			return
		}
	}
}

// UpdateQuantity sets the entry's quantity exactly. A quantity below 1
// removes the entry; a quantity of zero is never stored.
func (m *Manager) UpdateQuantity(id string, quantity int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID != id {
			continue
		}
		if quantity < 1 {
			m.items = append(m.items[:i], m.items[i+1:]...)
		} else {
			m.items[i].Quantity = quantity
		}
		m.enqueueSave()
		return
	}
}

// Items returns a copy of the cart contents in insertion order.
func (m *Manager) Items() []domain.CartItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Total is the sum of price*quantity over all items, 0 for an empty cart.
func (m *Manager) Total() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.total()
}

// HasMultipleSellers reports whether the cart holds items from more than one
// distinct seller. Items without a seller id never count toward the set.
func (m *Manager) HasMultipleSellers() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.multipleSellers()
}

// Clear empties the cart and persists the empty state.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	m.enqueueSave()
}

// Checkout validates the single-seller invariant and returns a snapshot of
// the cart, clearing it on success. Refusal leaves the cart untouched.
func (m *Manager) Checkout() (*domain.CartSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if m.multipleSellers() {
		return nil, domain.ErrMultipleSellers
	}
	snap := &domain.CartSnapshot{
		Items:      m.snapshot(),
		TotalCents: m.total(),
		CapturedAt: time.Now().UTC(),
	}
	m.items = nil
	m.enqueueSave()
	return snap, nil
}

// Flush blocks until every save enqueued so far has been written or failed.
func (m *Manager) Flush() {
	m.pending.Wait()
}

// Close flushes pending saves and stops the persist worker. The manager must
// not be used afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	close(m.saves)
	m.mu.Unlock()
	<-m.done
}

func (m *Manager) snapshot() []domain.CartItem {
	out := make([]domain.CartItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *Manager) total() int64 {
	var total int64
	for _, item := range m.items {
		total += item.PriceCents * int64(item.Quantity)
	}
	return total
}

func (m *Manager) multipleSellers() bool {
	sellers := make(map[string]struct{})
	for _, item := range m.items {
		if item.SellerID != "" {
			sellers[item.SellerID] = struct{}{}
		}
	}
	return len(sellers) > 1
}

// enqueueSave is called with the mutex held; the snapshot it hands over is
// detached from the live slice.
func (m *Manager) enqueueSave() {
	if m.store == nil || m.user == nil || m.closed {
		return
	}
	m.pending.Add(1)
	m.saves <- m.snapshot()
}

func (m *Manager) persistLoop() {
	defer close(m.done)
	for snapshot := range m.saves {
		consumed := 1
		// Coalesce queued snapshots; only the latest state matters since
		// every save replaces the whole cart.
	drain:
		for {
			select {
			case next, ok := <-m.saves:
				if !ok {
					break drain
				}
				snapshot = next
				consumed++
			default:
				break drain
			}
		}
		m.save(snapshot)
		for i := 0; i < consumed; i++ {
			m.pending.Done()
		}
	}
}

func (m *Manager) save(items []domain.CartItem) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	err := m.store.Save(ctx, domain.Cart{
		OwnerID:   m.user.ID,
		Items:     items,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		m.reportError(err)
	}
}

func (m *Manager) reportError(err error) {
	if m.onSaveError != nil {
		m.onSaveError(err)
	}
}
