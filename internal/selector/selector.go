// Package selector computes derived read-only views over a state snapshot.
// Selectors always recompute, never cache, never mutate, and tolerate
// missing foreign keys by excluding the dangling entry.
package selector

import (
	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/state"
)

// SenderID is the logged-in user id, empty when logged out.
func SenderID(st state.AppState) string {
	return st.Auth.UserID
}

// Sender is the logged-in user's record, if fetched.
func Sender(st state.AppState) (models.User, bool) {
	if st.Auth.UserID == "" {
		return models.User{}, false
	}
	u, ok := st.Users.Users[st.Auth.UserID]
	return u, ok
}

// Conversations joins the sender's memberships to conversation records,
// excluding the default conversation and memberships whose conversation has
// not been fetched yet. The pinned conversation name sorts first, the rest
// lexicographically.
func Conversations(st state.AppState) []models.Conversation {
	if st.Auth.UserID == "" {
		return nil
	}
	convs := make([]models.Conversation, 0)
	for conversationID := range st.Memberships.ByUserID[st.Auth.UserID] {
		if conversationID == st.Auth.DefaultConversationID {
			continue
		}
		if c, ok := st.Conversations.Conversations[conversationID]; ok {
			convs = append(convs, c)
		}
	}
	models.SortConversations(convs, models.PinnedConversationName)
	return convs
}

// Conversation looks up a conversation record by id.
func Conversation(st state.AppState, conversationID string) (models.Conversation, bool) {
	c, ok := st.Conversations.Conversations[conversationID]
	return c, ok
}

// DefaultConversation is the home conversation's record, if fetched.
func DefaultConversation(st state.AppState) (models.Conversation, bool) {
	return Conversation(st, st.Auth.DefaultConversationID)
}

// InitialConversationID is the deep-link target when present, the default
// conversation otherwise.
func InitialConversationID(st state.AppState) string {
	if st.Auth.DeepLinkConversationID != "" {
		return st.Auth.DeepLinkConversationID
	}
	return st.Auth.DefaultConversationID
}

// InitialConversation is the record for InitialConversationID, if fetched.
func InitialConversation(st state.AppState) (models.Conversation, bool) {
	return Conversation(st, InitialConversationID(st))
}

// User looks up a user record by id.
func User(st state.AppState, userID string) (models.User, bool) {
	u, ok := st.Users.Users[userID]
	return u, ok
}

// MessageSender is the user record behind a message, if fetched.
func MessageSender(st state.AppState, msg models.Message) (models.User, bool) {
	return User(st, msg.SenderID())
}

// Messages returns a conversation's messages sorted ascending by timetoken.
func Messages(st state.AppState, conversationID string) []models.Message {
	log, ok := st.Messages.ByConversationID[conversationID]
	if !ok {
		return nil
	}
	msgs := log.Messages()
	models.SortMessages(msgs)
	return msgs
}

// MemberCount is the size of a conversation's member set.
func MemberCount(st state.AppState, conversationID string) int {
	return len(st.Members.ByConversationID[conversationID])
}

// Occupancy is a conversation's current occupant count.
func Occupancy(st state.AppState, conversationID string) int {
	return st.Presence.ByConversationID[conversationID].Occupancy
}

// IsPresent reports whether the user currently occupies the conversation.
func IsPresent(st state.AppState, userID, conversationID string) bool {
	p, ok := st.Presence.ByConversationID[conversationID]
	if !ok {
		return false
	}
	_, present := p.Occupants[userID]
	return present
}

// SenderConnectivityOrPresence answers "show this user as online": for the
// sender that is the transport status, for everyone else their presence on
// the conversation.
func SenderConnectivityOrPresence(st state.AppState, userID, conversationID string) bool {
	if userID != "" && userID == st.Auth.UserID {
		return st.Network.Status == state.Connected
	}
	return IsPresent(st, userID, conversationID)
}

// MembersByPresence splits a conversation's members into present and absent
// users, each sorted by display name, with no duplicates. Members without a
// fetched user record are excluded.
func MembersByPresence(st state.AppState, conversationID string) (present, absent []models.User) {
	for userID := range st.Members.ByConversationID[conversationID] {
		u, ok := st.Users.Users[userID]
		if !ok {
			continue
		}
		if IsPresent(st, userID, conversationID) {
			present = append(present, u)
		} else {
			absent = append(absent, u)
		}
	}
	models.SortUsersByName(present)
	models.SortUsersByName(absent)
	return present, absent
}

// IsConnected combines the transport status with device reachability.
func IsConnected(st state.AppState) bool {
	return st.Network.Status != state.NotConnected && st.Network.DeviceConnected
}
