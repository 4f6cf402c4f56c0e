// Package realtime defines the boundary to the real-time publish/subscribe
// messaging service. The client core depends on this interface only; the
// embedded subpackage provides the implementation used in development.
package realtime

import (
	"context"
	"errors"

	"github.com/lalith-99/teamchat/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist on the
// service.
var ErrNotFound = errors.New("realtime: not found")

// Status is the connectivity of the subscribe transport.
type Status int

const (
	StatusNotConnected Status = iota
	StatusConnecting
	StatusConnected
)

func (s Status) String() string {
	switch s {
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	default:
		return "notConnected"
	}
}

// PresenceAction is the kind of a presence event on a channel.
type PresenceAction string

const (
	PresenceJoin     PresenceAction = "join"
	PresenceLeave    PresenceAction = "leave"
	PresenceTimeout  PresenceAction = "timeout"
	PresenceInterval PresenceAction = "interval"
)

// MessageEvent is a message delivered on a subscribed channel.
type MessageEvent struct {
	ConversationID string
	Timetoken      models.Timetoken
	Payload        models.MessagePayload
}

// PresenceEvent is an occupancy change on a subscribed channel. Join,
// leave and timeout events carry the affected user; interval events carry
// the authoritative occupant set instead.
type PresenceEvent struct {
	ConversationID string
	Action         PresenceAction
	UserID         string
	Occupancy      int
	OccupantIDs    []string
}

// Listener receives asynchronous service events. Nil callbacks are skipped.
type Listener struct {
	OnMessage  func(MessageEvent)
	OnPresence func(PresenceEvent)
	OnStatus   func(Status)
}

// Service is the outbound surface of the messaging service the core calls.
// All calls are safe for concurrent use; blocking happens only inside the
// service round trip, bounded by ctx.
type Service interface {
	// Login configures the client identity and returns a signed session
	// token for the local gateway. It must be called before Subscribe or
	// Publish.
	Login(ctx context.Context, userID string) (string, error)

	// AddListener registers callbacks for inbound events and returns a
	// function removing them again.
	AddListener(l Listener) (remove func())

	// Subscribe attaches the client to the given channels, optionally
	// announcing presence on them.
	Subscribe(ctx context.Context, channels []string, withPresence bool) error

	// Unsubscribe detaches from the given channels and withdraws presence.
	Unsubscribe(ctx context.Context, channels []string) error

	// Publish sends a message payload to a channel and returns the
	// timetoken the service assigned.
	Publish(ctx context.Context, channel string, payload models.MessagePayload) (models.Timetoken, error)

	// FetchUser returns the user record for the id, or ErrNotFound.
	FetchUser(ctx context.Context, userID string) (models.User, error)

	// FetchConversation returns the conversation record for the id, or
	// ErrNotFound.
	FetchConversation(ctx context.Context, conversationID string) (models.Conversation, error)

	// FetchMemberships lists the conversations the user belongs to.
	FetchMemberships(ctx context.Context, userID string) ([]models.UserMembership, error)

	// FetchMembers lists the users belonging to a conversation.
	FetchMembers(ctx context.Context, conversationID string) ([]models.ConversationMember, error)

	// Join adds the user to the given conversations and returns the
	// resulting user-side memberships.
	Join(ctx context.Context, userID string, conversationIDs []string) ([]models.UserMembership, error)

	// Leave removes the user from the given conversations.
	Leave(ctx context.Context, userID string, conversationIDs []string) error

	// FetchHistory returns up to limit most recent messages per channel,
	// ascending by timetoken.
	FetchHistory(ctx context.Context, channels []string, limit int) (map[string][]models.Message, error)

	// HereNow returns the current presence snapshot per channel.
	HereNow(ctx context.Context, channels []string) (map[string]models.PresenceSnapshot, error)

	// Close tears down the subscribe transport and releases resources.
	Close() error
}
