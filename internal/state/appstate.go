package state

// AppState is the whole application state tree. Entities reference each
// other by id only; derived views (sorted lists, joins) are computed by
// selectors, never stored here.
type AppState struct {
	Auth    AuthState
	Network NetworkState

	Users       UserState
	Memberships MembershipState

	Conversations ConversationState
	Members       MemberState

	Messages MessageState
	Presence PresenceState
}

// NewAppState builds an empty state tree homed on the given default
// conversation.
func NewAppState(defaultConversationID string) AppState {
	return AppState{
		Auth:          AuthState{DefaultConversationID: defaultConversationID},
		Users:         newUserState(),
		Memberships:   newMembershipState(),
		Conversations: newConversationState(),
		Members:       newMemberState(),
		Messages:      newMessageState(),
		Presence:      newPresenceState(),
	}
}

// Clone returns a deep copy. Snapshots handed to subscribers and selectors
// are clones, so readers never observe reducer mutation.
func (s AppState) Clone() AppState {
	next := s
	next.Users = s.Users.clone()
	next.Memberships = s.Memberships.clone()
	next.Conversations = s.Conversations.clone()
	next.Members = s.Members.clone()
	next.Messages = s.Messages.clone()
	next.Presence = s.Presence.clone()
	return next
}

// Reduce folds a single action into the state tree, forwarding it to the
// slice reducer of its domain. Unmatched domains are untouched, so
// reduction is deterministic per (state, action).
func Reduce(action Action, s *AppState) {
	switch a := action.(type) {
	case AuthAction:
		reduceAuth(a, &s.Auth)
	case NetworkAction:
		reduceNetwork(a, &s.Network)
	case UserAction:
		reduceUsers(a, &s.Users)
	case ConversationAction:
		reduceConversations(a, &s.Conversations)
	case MembershipAction:
		reduceMemberships(a, &s.Memberships)
	case MemberAction:
		reduceMembers(a, &s.Members)
	case MessageAction:
		reduceMessages(a, &s.Messages)
	case PresenceAction:
		reducePresence(a, &s.Presence)
	}
}
