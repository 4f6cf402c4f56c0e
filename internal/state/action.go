// Package state holds the normalized application state tree, the closed
// action taxonomy describing every legitimate state transition, and the
// pure reducers folding actions into state slices.
//
// Actions describe facts that occurred ("members added", "login failed"),
// never imperative commands; reducers stay pure and the command layer is
// the only source of asynchronous side effects.
package state

// Action is a state-transition fact. The set of implementations is closed:
// every action embeds one of the per-domain marker types in this package.
type Action interface {
	isAction()
}

// Per-domain action groups. The root reducer forwards an action to the
// slice reducer whose domain matches; other slices are untouched.
type (
	AuthAction interface {
		Action
		isAuthAction()
	}
	NetworkAction interface {
		Action
		isNetworkAction()
	}
	UserAction interface {
		Action
		isUserAction()
	}
	ConversationAction interface {
		Action
		isConversationAction()
	}
	MembershipAction interface {
		Action
		isMembershipAction()
	}
	MemberAction interface {
		Action
		isMemberAction()
	}
	MessageAction interface {
		Action
		isMessageAction()
	}
	PresenceAction interface {
		Action
		isPresenceAction()
	}
)

type authAction struct{}

func (authAction) isAction()     {}
func (authAction) isAuthAction() {}

type networkAction struct{}

func (networkAction) isAction()        {}
func (networkAction) isNetworkAction() {}

type userAction struct{}

func (userAction) isAction()     {}
func (userAction) isUserAction() {}

type conversationAction struct{}

func (conversationAction) isAction()             {}
func (conversationAction) isConversationAction() {}

type membershipAction struct{}

func (membershipAction) isAction()           {}
func (membershipAction) isMembershipAction() {}

type memberAction struct{}

func (memberAction) isAction()       {}
func (memberAction) isMemberAction() {}

type messageAction struct{}

func (messageAction) isAction()        {}
func (messageAction) isMessageAction() {}

type presenceAction struct{}

func (presenceAction) isAction()         {}
func (presenceAction) isPresenceAction() {}
