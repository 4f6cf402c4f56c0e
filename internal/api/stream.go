package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/lalith-99/teamchat/internal/selector"
	"github.com/lalith-99/teamchat/internal/state"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The gateway binds to loopback for the local presentation layer.
	CheckOrigin: func(*http.Request) bool { return true },
}

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

type streamEvent struct {
	Status        statusResponse         `json:"status"`
	Conversations []conversationResponse `json:"conversations"`
}

func streamEventFrom(snapshot state.AppState) streamEvent {
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
	return streamEvent{
		Status: statusResponse{
			Status:          snapshot.Network.Status.String(),
			DeviceConnected: snapshot.Network.DeviceConnected,
			Connected:       selector.IsConnected(snapshot),
			Monitoring:      snapshot.Network.Monitoring,
			LoggingIn:       snapshot.Auth.IsLoggingIn,
			UserID:          selector.SenderID(snapshot),
		},
		Conversations: out,
	}
}

// handleStream pushes a fresh snapshot view over a WebSocket after every
// applied action. Updates are coalesced: a slow client sees the latest
// state, not every intermediate one.
func (s *Server) handleStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	updates := make(chan state.AppState, 1)
	push := func(snapshot state.AppState) {
		// Replace a pending stale snapshot instead of blocking the
		// dispatch goroutine.
		for {
			select {
			case updates <- snapshot:
				return
			default:
				select {
				case <-updates:
				default:
				}
			}
		}
	}
	unsubscribe := s.store.Subscribe(push)
	defer unsubscribe()

	push(s.store.Snapshot())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case snapshot := <-updates:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(streamEventFrom(snapshot)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
