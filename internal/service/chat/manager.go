package chat

import (
	"errors"
	"strings"
	"sync"
	"time"

	"storefront-core/internal/domain"
)

var (
	// ErrEmptyMessage rejects messages whose text is empty after trimming.
	ErrEmptyMessage = errors.New("message text required")
)

// Delivery receives every appended message so it can be pushed to the open
// view or a remote counterpart. Implementations must not block.
type Delivery interface {
	Deliver(conversationID string, msg domain.Message)
}

// Manager owns one session's conversation store: the mapping from
// conversation ids to append-only message sequences, plus the single active
// conversation of the open viewport.
type Manager struct {
	user     *domain.Customer
	delivery Delivery

	mu            sync.Mutex
	conversations map[string]*domain.Conversation
	order         []string
	active        string
	nextMessageID int64
}

// NewManager builds an empty conversation store for the given customer.
// delivery may be nil.
func NewManager(user *domain.Customer, delivery Delivery) *Manager {
	return &Manager{
		user:          user,
		delivery:      delivery,
		conversations: make(map[string]*domain.Conversation),
	}
}

// ConversationID derives the conversation id for a counterpart. Starting a
// chat with the same seller twice must land in the same thread, so the id is
// a pure function of the counterpart id.
func ConversationID(counterpartID string) string {
	return "conv-" + counterpartID
}

// Start opens (or refocuses) the conversation with the given counterpart and
// marks it active. Idempotent: an existing conversation keeps its messages.
func (m *Manager) Start(counterpartID string) (string, error) {
	counterpartID = strings.TrimSpace(counterpartID)
	if counterpartID == "" {
		return "", errors.New("counterpart id required")
	}

	id := ConversationID(counterpartID)
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.conversations[id]; !ok {
		m.conversations[id] = &domain.Conversation{
			ID:            id,
			CounterpartID: counterpartID,
			CreatedAt:     time.Now().UTC(),
		}
		m.order = append(m.order, id)
	}
	m.active = id
	return id, nil
}

// Send appends a message from the current customer to the conversation and
// returns it. Messages are immutable once appended; two sends with identical
// text produce two distinct messages.
func (m *Manager) Send(conversationID, text string) (*domain.Message, error) {
	if m.user == nil {
		return nil, domain.ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	m.mu.Lock()
	conv, ok := m.conversations[conversationID]
	if !ok {
		m.mu.Unlock()
		return nil, domain.ErrNotFound
	}
	m.nextMessageID++
	msg := domain.Message{
		ID:             m.nextMessageID,
		ConversationID: conversationID,
		SenderID:       m.user.ID,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	}
	conv.Messages = append(conv.Messages, msg)
	m.mu.Unlock()

	if m.delivery != nil {
		m.delivery.Deliver(conversationID, msg)
	}
	return &msg, nil
}

// Messages returns a copy of the conversation's ordered message sequence.
// Unknown conversations yield an empty sequence, not an error.
func (m *Manager) Messages(conversationID string) []domain.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.conversations[conversationID]
	if !ok || len(conv.Messages) == 0 {
		return nil
	}
	out := make([]domain.Message, len(conv.Messages))
	copy(out, conv.Messages)
	return out
}

// Active returns the id of the conversation currently in focus, or "".
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

// Conversations lists all conversations in creation order, without their
// message bodies.
func (m *Manager) Conversations() []domain.Conversation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Conversation, 0, len(m.order))
	for _, id := range m.order {
		conv := m.conversations[id]
		out = append(out, domain.Conversation{
			ID:            conv.ID,
			CounterpartID: conv.CounterpartID,
			CreatedAt:     conv.CreatedAt,
		})
	}
	return out
}
