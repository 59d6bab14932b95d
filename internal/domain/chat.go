package domain

import "time"

// Message is an immutable entry in a conversation. Insertion order is
// chronological order; messages are never edited or reordered after append.
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Conversation is an ordered message thread between the current customer and
// one counterpart (seller).
type Conversation struct {
	ID            string    `json:"id"`
	CounterpartID string    `json:"counterpartId"`
	Messages      []Message `json:"messages"`
	CreatedAt     time.Time `json:"createdAt"`
}
