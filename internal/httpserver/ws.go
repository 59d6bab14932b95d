package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"storefront-core/internal/domain"
)

// ChatHub pushes appended chat messages to websocket subscribers of a
// conversation. It implements chat.Delivery; Deliver fans out in the
// background so the sending request never waits on a slow reader.
type ChatHub struct {
	logger         *log.Logger
	originPatterns []string

	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]struct{}
}

func NewChatHub(logger *log.Logger, allowedOrigins []string) *ChatHub {
	return &ChatHub{
		logger:         logger,
		originPatterns: hostPatterns(allowedOrigins),
		subs:           make(map[string]map[*websocket.Conn]struct{}),
	}
}

// Deliver sends the message to every subscriber of the conversation.
func (h *ChatHub) Deliver(conversationID string, msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Printf("marshal message %d: %v", msg.ID, err)
		return
	}
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.subs[conversationID]))
	for conn := range h.subs[conversationID] {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		go h.write(conversationID, conn, data)
	}
}

func (h *ChatHub) write(conversationID string, conn *websocket.Conn, data []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		h.remove(conversationID, conn)
		_ = conn.Close(websocket.StatusNormalClosure, "write failed")
	}
}

func (h *ChatHub) add(conversationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[conversationID] == nil {
		h.subs[conversationID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[conversationID][conn] = struct{}{}
}

func (h *ChatHub) remove(conversationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[conversationID], conn)
	if len(h.subs[conversationID]) == 0 {
		delete(h.subs, conversationID)
	}
}

// streamMessages upgrades to a websocket and streams every message appended
// to the conversation until the client disconnects.
func (h *handlers) streamMessages(c *gin.Context) {
	hub := h.deps.Hub
	if hub == nil {
		c.Status(http.StatusNotFound)
		return
	}
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: hub.originPatterns,
	})
	if err != nil {
		h.logger.Printf("websocket accept: %v", err)
		return
	}
	conversationID := c.Param("id")
	hub.add(conversationID, conn)
	defer hub.remove(conversationID, conn)
	defer conn.CloseNow()

	// Inbound frames are ignored; the read loop only detects disconnect.
	ctx := c.Request.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

// hostPatterns turns configured origins (scheme://host:port) into the host
// patterns the websocket library matches against.
func hostPatterns(origins []string) []string {
	var out []string
	for _, origin := range origins {
		u, err := url.Parse(strings.TrimSpace(origin))
		if err != nil || u.Host == "" {
			continue
		}
		out = append(out, u.Host)
	}
	return out
}
