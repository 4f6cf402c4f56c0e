package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/teamchat/internal/realtime"
	"github.com/lalith-99/teamchat/internal/selector"
	"go.uber.org/zap"
)

type loginRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type loginResponse struct {
	UserID string `json:"userId"`
	Token  string `json:"token"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	result, err := s.commands.Login(c.Request.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, realtime.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown user"})
			return
		}
		s.logger.Error("login failed", zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		UserID: result.UserID,
		Token:  result.SessionToken,
	})
}

func (s *Server) handleSync(c *gin.Context) {
	if err := s.commands.SyncSenderData(c.Request.Context()); err != nil {
		s.logger.Error("sender data sync failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "sync failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

type deepLinkRequest struct {
	ConversationID string `json:"conversationId" binding:"required"`
}

func (s *Server) handleDeepLink(c *gin.Context) {
	var req deepLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
		return
	}
	s.commands.DeepLink(req.ConversationID)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleMe(c *gin.Context) {
	snapshot := s.store.Snapshot()
	sender, ok := selector.Sender(snapshot)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "sender not loaded"})
		return
	}
	c.JSON(http.StatusOK, sender)
}
