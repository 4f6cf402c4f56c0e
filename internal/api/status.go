package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lalith-99/teamchat/internal/selector"
)

type statusResponse struct {
	Status          string `json:"status"`
	DeviceConnected bool   `json:"deviceConnected"`
	Connected       bool   `json:"connected"`
	Monitoring      bool   `json:"monitoring"`
	LoggingIn       bool   `json:"loggingIn"`
	UserID          string `json:"userId,omitempty"`
}

func (s *Server) handleStatus(c *gin.Context) {
	snapshot := s.store.Snapshot()
	c.JSON(http.StatusOK, statusResponse{
		Status:          snapshot.Network.Status.String(),
		DeviceConnected: snapshot.Network.DeviceConnected,
		Connected:       selector.IsConnected(snapshot),
		Monitoring:      snapshot.Network.Monitoring,
		LoggingIn:       snapshot.Auth.IsLoggingIn,
		UserID:          selector.SenderID(snapshot),
	})
}
