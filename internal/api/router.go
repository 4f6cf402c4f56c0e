// Package api exposes the client core over a local HTTP gateway: snapshot
// reads go through selectors, writes run commands, and a WebSocket stream
// pushes fresh snapshots to the presentation layer.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/teamchat/internal/command"
	"github.com/lalith-99/teamchat/internal/middleware"
	"github.com/lalith-99/teamchat/internal/store"
	"go.uber.org/zap"
)

type Server struct {
	commands *command.Commands
	store    *store.Store
	logger   *zap.Logger
	secret   string
}

func NewServer(commands *command.Commands, st *store.Store, secret string, logger *zap.Logger) *Server {
	return &Server{
		commands: commands,
		store:    st,
		logger:   logger,
		secret:   secret,
	}
}

func (s *Server) Router(env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/v1/health", s.handleHealth)
	r.POST("/v1/auth/login", s.handleLogin)

	authed := r.Group("/v1", middleware.RequireAuth(s.secret))
	{
		authed.POST("/sync", s.handleSync)
		authed.POST("/deeplink", s.handleDeepLink)
		authed.GET("/me", s.handleMe)
		authed.GET("/status", s.handleStatus)
		authed.GET("/conversations", s.handleListConversations)
		authed.GET("/conversations/:id", s.handleGetConversation)
		authed.GET("/conversations/:id/messages", s.handleListMessages)
		authed.POST("/conversations/:id/messages", s.handleSendMessage)
		authed.GET("/conversations/:id/members", s.handleListMembers)
		authed.POST("/conversations/join", s.handleJoin)
		authed.POST("/conversations/leave", s.handleLeave)
		authed.GET("/stream", s.handleStream)
	}

	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
