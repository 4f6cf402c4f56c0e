package state

// Auth actions. Login completions carry the attempt they belong to so a
// stale completion arriving after a newer attempt has already transitioned
// the state machine is discarded.

type PerformingLogin struct {
	authAction
	AttemptID int64
}

type LoggedIn struct {
	authAction
	AttemptID int64
	UserID    string
}

type LoginFailed struct {
	authAction
	AttemptID int64
	Err       error
}

type SyncingSenderData struct{ authAction }

type DataSyncComplete struct{ authAction }

type DataSyncFailed struct {
	authAction
	Err error
}

type DeepLinkConversation struct {
	authAction
	ConversationID string
}

// AuthState is the login state machine plus the conversation targets the
// client starts from. UserID empty means logged out.
type AuthState struct {
	IsLoggingIn  bool
	UserID       string
	LoginAttempt int64

	DefaultConversationID  string
	DeepLinkConversationID string
}

func reduceAuth(action AuthAction, s *AuthState) {
	switch a := action.(type) {
	case PerformingLogin:
		s.IsLoggingIn = true
		s.LoginAttempt = a.AttemptID
	case LoggedIn:
		if a.AttemptID != s.LoginAttempt {
			return
		}
		s.UserID = a.UserID
		s.IsLoggingIn = false
	case LoginFailed:
		if a.AttemptID != s.LoginAttempt {
			return
		}
		s.IsLoggingIn = false
	case DeepLinkConversation:
		s.DeepLinkConversationID = a.ConversationID
	default:
		// Sync progress actions don't move the auth slice.
	}
}
