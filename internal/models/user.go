package models

import (
	"sort"
	"strings"
	"time"
)

// User is a person known to the chat service. Records are replaced whole
// on fetch or profile-update events, never field-patched.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	Email      string `json:"email,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
	ExternalID string `json:"externalId,omitempty"`

	Title string `json:"title,omitempty"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	ETag    string    `json:"eTag"`
}

// NewUser fills the server-assigned fields the way the service would for a
// record created locally (seeding, tests).
func NewUser(id, name, title string) User {
	if id == "" {
		id = NewUserID()
	}
	now := time.Now().UTC()
	return User{
		ID:      id,
		Name:    name,
		Title:   title,
		Created: now,
		Updated: now,
		ETag:    id,
	}
}

// Initials returns the upper-cased first letter of each word of the
// display name.
func (u User) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(u.Name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// SortUsersByName orders users lexicographically by display name.
func SortUsersByName(users []User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name == users[j].Name {
			return users[i].ID < users[j].ID
		}
		return users[i].Name < users[j].Name
	})
}

// UserMembership is the user-side edge of the user/conversation relation.
// Its ID is the conversation id in the context of the owning user.
type UserMembership struct {
	ID string `json:"id"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	ETag    string    `json:"eTag"`
}

// ConversationID is the id of the conversation this membership points at.
func (m UserMembership) ConversationID() string {
	return m.ID
}
