package models

import (
	"sort"
	"time"
)

// PinnedConversationName always sorts first in conversation listings.
const PinnedConversationName = "Introductions"

// Conversation is a named channel functioning as a chat room.
type Conversation struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Purpose string `json:"purpose,omitempty"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	ETag    string    `json:"eTag"`
}

// NewConversation fills the server-assigned fields for a locally created
// record (seeding, tests).
func NewConversation(id, name, purpose string) Conversation {
	if id == "" {
		id = NewConversationID()
	}
	now := time.Now().UTC()
	return Conversation{
		ID:      id,
		Name:    name,
		Purpose: purpose,
		Created: now,
		Updated: now,
		ETag:    id,
	}
}

// SortConversations orders conversations with the pinned name first and the
// rest lexicographically by name.
func SortConversations(convs []Conversation, pinnedName string) {
	sort.Slice(convs, func(i, j int) bool {
		if convs[i].Name == pinnedName {
			return convs[j].Name != pinnedName
		}
		if convs[j].Name == pinnedName {
			return false
		}
		if convs[i].Name == convs[j].Name {
			return convs[i].ID < convs[j].ID
		}
		return convs[i].Name < convs[j].Name
	})
}

// ConversationMember is the conversation-side edge of the user/conversation
// relation. Its ID is the user id within the owning conversation's member set.
type ConversationMember struct {
	ID string `json:"id"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	ETag    string    `json:"eTag"`
}

// UserID is the id of the user this member entry points at.
func (m ConversationMember) UserID() string {
	return m.ID
}
