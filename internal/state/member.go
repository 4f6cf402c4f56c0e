package state

import "github.com/lalith-99/teamchat/internal/models"

type MembersRetrieved struct {
	memberAction
	ConversationID string
	Members        []models.ConversationMember
}

type MembersAdded struct {
	memberAction
	ConversationID string
	Members        []models.ConversationMember
}

type MembersRemoved struct {
	memberAction
	ConversationID string
	UserIDs        []string
}

type MemberFetchFailed struct {
	memberAction
	ConversationID string
	Err            error
}

// MemberState maps conversation id to that conversation's member set,
// keyed by user id.
type MemberState struct {
	ByConversationID map[string]map[string]models.ConversationMember
}

func newMemberState() MemberState {
	return MemberState{ByConversationID: make(map[string]map[string]models.ConversationMember)}
}

func (s MemberState) clone() MemberState {
	next := MemberState{ByConversationID: make(map[string]map[string]models.ConversationMember, len(s.ByConversationID))}
	for convID, set := range s.ByConversationID {
		copied := make(map[string]models.ConversationMember, len(set))
		for id, m := range set {
			copied[id] = m
		}
		next.ByConversationID[convID] = copied
	}
	return next
}

func reduceMembers(action MemberAction, s *MemberState) {
	switch a := action.(type) {
	case MembersRetrieved:
		// The retrieved list is authoritative for the conversation.
		set := make(map[string]models.ConversationMember, len(a.Members))
		for _, m := range a.Members {
			set[m.ID] = m
		}
		s.ByConversationID[a.ConversationID] = set
	case MembersAdded:
		set := s.ByConversationID[a.ConversationID]
		if set == nil {
			set = make(map[string]models.ConversationMember, len(a.Members))
			s.ByConversationID[a.ConversationID] = set
		}
		for _, m := range a.Members {
			set[m.ID] = m
		}
	case MembersRemoved:
		set := s.ByConversationID[a.ConversationID]
		for _, id := range a.UserIDs {
			delete(set, id)
		}
	default:
	}
}
