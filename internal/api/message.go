package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/teamchat/internal/selector"
	"go.uber.org/zap"
)

type messageResponse struct {
	Timetoken  int64  `json:"timetoken"`
	SentAt     int64  `json:"sentAt"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName,omitempty"`
	Kind       string `json:"kind"`
	Text       string `json:"text,omitempty"`
}

func (s *Server) handleListMessages(c *gin.Context) {
	conversationID := c.Param("id")
	snapshot := s.store.Snapshot()

	msgs := selector.Messages(snapshot, conversationID)
	out := make([]messageResponse, 0, len(msgs))
	for _, msg := range msgs {
		resp := messageResponse{
			Timetoken: int64(msg.Timetoken),
			SentAt:    msg.Timetoken.InSeconds(),
			SenderID:  msg.SenderID(),
			Kind:      string(msg.Payload.Content.Kind()),
			Text:      msg.Payload.Content.Text(),
		}
		if sender, ok := selector.MessageSender(snapshot, msg); ok {
			resp.SenderName = sender.Name
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleSendMessage(c *gin.Context) {
	conversationID := c.Param("id")

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	msg, err := s.commands.SendMessage(c.Request.Context(), conversationID, req.Text)
	if err != nil {
		s.logger.Error("send failed", zap.String("conversation_id", conversationID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "send failed"})
		return
	}

	c.JSON(http.StatusCreated, messageResponse{
		Timetoken: int64(msg.Timetoken),
		SentAt:    msg.Timetoken.InSeconds(),
		SenderID:  msg.SenderID(),
		Kind:      string(msg.Payload.Content.Kind()),
		Text:      msg.Payload.Content.Text(),
	})
}
