package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortConversationsPinsIntroductionsFirst(t *testing.T) {
	convs := []Conversation{
		{ID: "c3", Name: "Zebra"},
		{ID: "c1", Name: PinnedConversationName},
		{ID: "c2", Name: "Apple"},
	}
	SortConversations(convs, PinnedConversationName)

	assert.Equal(t, PinnedConversationName, convs[0].Name)
	assert.Equal(t, "Apple", convs[1].Name)
	assert.Equal(t, "Zebra", convs[2].Name)
}

func TestSortConversationsTiesBreakOnID(t *testing.T) {
	convs := []Conversation{
		{ID: "c2", Name: "General"},
		{ID: "c1", Name: "General"},
	}
	SortConversations(convs, PinnedConversationName)

	assert.Equal(t, "c1", convs[0].ID)
	assert.Equal(t, "c2", convs[1].ID)
}

func TestUserInitials(t *testing.T) {
	assert.Equal(t, "FL", User{Name: "funky lion"}.Initials())
	assert.Equal(t, "C", User{Name: "Craig"}.Initials())
	assert.Equal(t, "", User{}.Initials())
}

func TestSortUsersByName(t *testing.T) {
	users := []User{
		{ID: "u2", Name: "Zoe"},
		{ID: "u1", Name: "Amir"},
		{ID: "u4", Name: "Mia"},
		{ID: "u3", Name: "Mia"},
	}
	SortUsersByName(users)

	assert.Equal(t, "Amir", users[0].Name)
	assert.Equal(t, "u3", users[1].ID)
	assert.Equal(t, "u4", users[2].ID)
	assert.Equal(t, "Zoe", users[3].Name)
}
