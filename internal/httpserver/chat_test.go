package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"storefront-core/internal/domain"
)

func TestStartConversation(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodPost, "/chat/conversations", `{"sellerId":"seller-9"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ConversationID string `json:"conversationId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ConversationID != "conv-seller-9" {
		t.Fatalf("unexpected conversation id %q", resp.ConversationID)
	}
}

func TestStartConversationRequiresSellerID(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodPost, "/chat/conversations", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSendAndListMessages(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	doJSON(t, router, http.MethodPost, "/chat/conversations", `{"sellerId":"seller-9"}`)

	w := doJSON(t, router, http.MethodPost, "/chat/conversations/conv-seller-9/messages", `{"text":"hello"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/chat/conversations/conv-seller-9/messages", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Messages []domain.Message `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Text != "hello" || resp.Messages[0].SenderID != "cust-1" {
		t.Fatalf("unexpected messages: %+v", resp.Messages)
	}
}

func TestSendMessageBlankText(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	doJSON(t, router, http.MethodPost, "/chat/conversations", `{"sellerId":"seller-9"}`)
	w := doJSON(t, router, http.MethodPost, "/chat/conversations/conv-seller-9/messages", `{"text":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodPost, "/chat/conversations/conv-missing/messages", `{"text":"hello"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestListConversations(t *testing.T) {
	router := newTestRouter(testDeps(nil), &domain.Customer{ID: "cust-1"})

	w := doJSON(t, router, http.MethodGet, "/chat/conversations", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var empty struct {
		Conversations []domain.Conversation `json:"conversations"`
		Active        string                `json:"activeConversation"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &empty); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(empty.Conversations) != 0 || empty.Active != "" {
		t.Fatalf("expected no conversations, got %+v", empty)
	}

	doJSON(t, router, http.MethodPost, "/chat/conversations", `{"sellerId":"seller-9"}`)

	w = doJSON(t, router, http.MethodGet, "/chat/conversations", "")
	var resp struct {
		Conversations []domain.Conversation `json:"conversations"`
		Active        string                `json:"activeConversation"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Conversations) != 1 || resp.Active != "conv-seller-9" {
		t.Fatalf("unexpected conversations: %+v", resp)
	}
}
