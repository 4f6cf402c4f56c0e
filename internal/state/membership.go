package state

import "github.com/lalith-99/teamchat/internal/models"

// Membership actions operate on the user-side edge of the user/conversation
// relation. The conversation-side edge lives in the member slice; the
// command layer keeps the two sides consistent by dispatching matched
// actions, the slices themselves are independent.

type MembershipsRetrieved struct {
	membershipAction
	UserID      string
	Memberships []models.UserMembership
}

type ConversationsJoined struct {
	membershipAction
	UserID      string
	Memberships []models.UserMembership
}

type ConversationsLeft struct {
	membershipAction
	UserID          string
	ConversationIDs []string
}

type MembershipFetchFailed struct {
	membershipAction
	UserID string
	Err    error
}

type JoinFailed struct {
	membershipAction
	UserID          string
	ConversationIDs []string
	Err             error
}

type LeaveFailed struct {
	membershipAction
	UserID          string
	ConversationIDs []string
	Err             error
}

// MembershipState maps user id to that user's memberships, keyed by
// conversation id.
type MembershipState struct {
	ByUserID map[string]map[string]models.UserMembership
}

func newMembershipState() MembershipState {
	return MembershipState{ByUserID: make(map[string]map[string]models.UserMembership)}
}

func (s MembershipState) clone() MembershipState {
	next := MembershipState{ByUserID: make(map[string]map[string]models.UserMembership, len(s.ByUserID))}
	for userID, set := range s.ByUserID {
		copied := make(map[string]models.UserMembership, len(set))
		for id, m := range set {
			copied[id] = m
		}
		next.ByUserID[userID] = copied
	}
	return next
}

func reduceMemberships(action MembershipAction, s *MembershipState) {
	switch a := action.(type) {
	case MembershipsRetrieved:
		// The retrieved list is authoritative for the user.
		set := make(map[string]models.UserMembership, len(a.Memberships))
		for _, m := range a.Memberships {
			set[m.ID] = m
		}
		s.ByUserID[a.UserID] = set
	case ConversationsJoined:
		set := s.ByUserID[a.UserID]
		if set == nil {
			set = make(map[string]models.UserMembership, len(a.Memberships))
			s.ByUserID[a.UserID] = set
		}
		for _, m := range a.Memberships {
			set[m.ID] = m
		}
	case ConversationsLeft:
		set := s.ByUserID[a.UserID]
		for _, id := range a.ConversationIDs {
			delete(set, id)
		}
	default:
	}
}
