package state

import "github.com/lalith-99/teamchat/internal/models"

type ConversationRetrieved struct {
	conversationAction
	Conversation models.Conversation
}

type ConversationsRetrieved struct {
	conversationAction
	Conversations []models.Conversation
}

type ConversationUpdated struct {
	conversationAction
	Conversation models.Conversation
}

type ConversationRemoved struct {
	conversationAction
	ConversationID string
}

type ConversationFetchFailed struct {
	conversationAction
	ConversationID string
	Err            error
}

// ConversationState is the normalized conversation collection, keyed by
// conversation id.
type ConversationState struct {
	Conversations map[string]models.Conversation
}

func newConversationState() ConversationState {
	return ConversationState{Conversations: make(map[string]models.Conversation)}
}

func (s ConversationState) clone() ConversationState {
	next := ConversationState{Conversations: make(map[string]models.Conversation, len(s.Conversations))}
	for id, c := range s.Conversations {
		next.Conversations[id] = c
	}
	return next
}

func reduceConversations(action ConversationAction, s *ConversationState) {
	switch a := action.(type) {
	case ConversationRetrieved:
		s.Conversations[a.Conversation.ID] = a.Conversation
	case ConversationsRetrieved:
		for _, c := range a.Conversations {
			s.Conversations[c.ID] = c
		}
	case ConversationUpdated:
		s.Conversations[a.Conversation.ID] = a.Conversation
	case ConversationRemoved:
		delete(s.Conversations, a.ConversationID)
	default:
	}
}
