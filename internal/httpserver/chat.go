package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-core/internal/domain"
	chatsvc "storefront-core/internal/service/chat"
)

type startConversationRequest struct {
	SellerID string `json:"sellerId" binding:"required"`
}

func (h *handlers) startConversation(c *gin.Context) {
	var in startConversationRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sellerId required"})
		return
	}
	sess := h.session(c)
	id, err := sess.Chat.Start(in.SellerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversationId": id})
}

func (h *handlers) listConversations(c *gin.Context) {
	sess := h.session(c)
	convs := sess.Chat.Conversations()
	if convs == nil {
		convs = []domain.Conversation{}
	}
	c.JSON(http.StatusOK, gin.H{
		"conversations":      convs,
		"activeConversation": sess.Chat.Active(),
	})
}

func (h *handlers) listMessages(c *gin.Context) {
	sess := h.session(c)
	msgs := sess.Chat.Messages(c.Param("id"))
	if msgs == nil {
		msgs = []domain.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *handlers) sendMessage(c *gin.Context) {
	var in sendMessageRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	sess := h.session(c)
	msg, err := sess.Chat.Send(c.Param("id"), in.Text)
	if err != nil {
		switch {
		case errors.Is(err, chatsvc.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message text required"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}
