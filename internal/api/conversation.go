package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/selector"
	"go.uber.org/zap"
)

type conversationResponse struct {
	models.Conversation
	MemberCount int  `json:"memberCount"`
	Occupancy   int  `json:"occupancy"`
	Initial     bool `json:"initial"`
}

func (s *Server) handleListConversations(c *gin.Context) {
	snapshot := s.store.Snapshot()
	initialID := selector.InitialConversationID(snapshot)

	convs := selector.Conversations(snapshot)
	out := make([]conversationResponse, 0, len(convs))
	for _, conv := range convs {
		out = append(out, conversationResponse{
			Conversation: conv,
			MemberCount:  selector.MemberCount(snapshot, conv.ID),
			Occupancy:    selector.Occupancy(snapshot, conv.ID),
			Initial:      conv.ID == initialID,
		})
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

func (s *Server) handleGetConversation(c *gin.Context) {
	conversationID := c.Param("id")
	snapshot := s.store.Snapshot()

	conv, ok := selector.Conversation(snapshot, conversationID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "conversation not loaded"})
		return
	}
	c.JSON(http.StatusOK, conversationResponse{
		Conversation: conv,
		MemberCount:  selector.MemberCount(snapshot, conversationID),
		Occupancy:    selector.Occupancy(snapshot, conversationID),
		Initial:      conv.ID == selector.InitialConversationID(snapshot),
	})
}

type memberResponse struct {
	models.User
	Present     bool   `json:"present"`
	AvatarColor string `json:"avatarColor"`
	Initials    string `json:"initials"`
}

func memberResponses(users []models.User, present bool) []memberResponse {
	out := make([]memberResponse, 0, len(users))
	for _, u := range users {
		out = append(out, memberResponse{
			User:        u,
			Present:     present,
			AvatarColor: models.AvatarColorFor(u.ID).Hex,
			Initials:    u.Initials(),
		})
	}
	return out
}

func (s *Server) handleListMembers(c *gin.Context) {
	conversationID := c.Param("id")
	snapshot := s.store.Snapshot()

	present, absent := selector.MembersByPresence(snapshot, conversationID)
	c.JSON(http.StatusOK, gin.H{
		"present": memberResponses(present, true),
		"absent":  memberResponses(absent, false),
	})
}

type membershipRequest struct {
	ConversationIDs []string `json:"conversationIds" binding:"required,min=1"`
}

func (s *Server) handleJoin(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversationIds is required"})
		return
	}
	if err := s.commands.JoinConversations(c.Request.Context(), req.ConversationIDs...); err != nil {
		s.logger.Error("join failed", zap.Strings("conversation_ids", req.ConversationIDs), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "join failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleLeave(c *gin.Context) {
	var req membershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "conversationIds is required"})
		return
	}
	if err := s.commands.LeaveConversations(c.Request.Context(), req.ConversationIDs...); err != nil {
		s.logger.Error("leave failed", zap.Strings("conversation_ids", req.ConversationIDs), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "leave failed"})
		return
	}
	c.Status(http.StatusNoContent)
}
