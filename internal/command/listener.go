package command

import (
	"github.com/lalith-99/teamchat/internal/realtime"
	"github.com/lalith-99/teamchat/internal/state"
	"go.uber.org/zap"
)

// ensureListener attaches the service listener once per Commands instance.
// Each inbound service event translates 1:1 into a dispatched action.
func (c *Commands) ensureListener() {
	c.listenOnce.Do(func() {
		c.removeListener = c.svc.AddListener(realtime.Listener{
			OnMessage:  c.onMessage,
			OnPresence: c.onPresence,
			OnStatus:   c.onStatus,
		})
	})
}

func (c *Commands) onMessage(ev realtime.MessageEvent) {
	c.store.Dispatch(state.MessageReceived{Message: messageFrom(ev)})
}

func (c *Commands) onPresence(ev realtime.PresenceEvent) {
	c.store.Dispatch(state.PresenceEventReceived{
		ConversationID: ev.ConversationID,
		Verb:           presenceVerb(ev.Action),
		UserID:         ev.UserID,
		Occupancy:      ev.Occupancy,
		OccupantIDs:    ev.OccupantIDs,
	})
}

func (c *Commands) onStatus(status realtime.Status) {
	c.logger.Info("connection status changed", zap.Stringer("status", status))
	c.store.Dispatch(state.NetworkStatusChanged{Status: connectionStatus(status)})
}

func presenceVerb(a realtime.PresenceAction) state.PresenceVerb {
	switch a {
	case realtime.PresenceJoin:
		return state.PresenceJoin
	case realtime.PresenceLeave:
		return state.PresenceLeave
	case realtime.PresenceTimeout:
		return state.PresenceTimeout
	default:
		return state.PresenceInterval
	}
}

func connectionStatus(s realtime.Status) state.ConnectionStatus {
	switch s {
	case realtime.StatusConnecting:
		return state.Connecting
	case realtime.StatusConnected:
		return state.Connected
	default:
		return state.NotConnected
	}
}
