package state

import (
	"testing"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHereNowReplacesSnapshot(t *testing.T) {
	st := NewAppState("space_default")

	Reduce(HereNowRetrieved{Presence: map[string]models.PresenceSnapshot{
		"c1": {OccupantIDs: []string{"u1", "u2"}, Occupancy: 2},
	}}, &st)
	Reduce(HereNowRetrieved{Presence: map[string]models.PresenceSnapshot{
		"c1": {OccupantIDs: []string{"u3"}, Occupancy: 1},
	}}, &st)

	p := st.Presence.ByConversationID["c1"]
	assert.Equal(t, 1, p.Occupancy)
	assert.Contains(t, p.Occupants, "u3")
	assert.NotContains(t, p.Occupants, "u1")
}

func TestPresenceJoinAndLeave(t *testing.T) {
	st := NewAppState("space_default")

	Reduce(PresenceEventReceived{ConversationID: "c1", Verb: PresenceJoin, UserID: "u1", Occupancy: 1}, &st)
	assert.Contains(t, st.Presence.ByConversationID["c1"].Occupants, "u1")
	assert.Equal(t, 1, st.Presence.ByConversationID["c1"].Occupancy)

	Reduce(PresenceEventReceived{ConversationID: "c1", Verb: PresenceLeave, UserID: "u1", Occupancy: 0}, &st)
	assert.NotContains(t, st.Presence.ByConversationID["c1"].Occupants, "u1")
	assert.Equal(t, 0, st.Presence.ByConversationID["c1"].Occupancy)
}

func TestPresenceTimeoutRemovesOccupant(t *testing.T) {
	st := NewAppState("space_default")

	Reduce(PresenceEventReceived{ConversationID: "c1", Verb: PresenceJoin, UserID: "u1", Occupancy: 1}, &st)
	Reduce(PresenceEventReceived{ConversationID: "c1", Verb: PresenceTimeout, UserID: "u1", Occupancy: 0}, &st)

	assert.Empty(t, st.Presence.ByConversationID["c1"].Occupants)
}

func TestPresenceIntervalReplacesOccupants(t *testing.T) {
	st := NewAppState("space_default")

	Reduce(PresenceEventReceived{ConversationID: "c1", Verb: PresenceJoin, UserID: "u1", Occupancy: 1}, &st)
	Reduce(PresenceEventReceived{
		ConversationID: "c1",
		Verb:           PresenceInterval,
		OccupantIDs:    []string{"u2", "u3"},
		Occupancy:      2,
	}, &st)

	p := st.Presence.ByConversationID["c1"]
	assert.NotContains(t, p.Occupants, "u1")
	assert.Contains(t, p.Occupants, "u2")
	assert.Contains(t, p.Occupants, "u3")
	assert.Equal(t, 2, p.Occupancy)
}

func TestPresenceNegativeOccupancyFallsBackToSetSize(t *testing.T) {
	st := NewAppState("space_default")

	Reduce(PresenceEventReceived{ConversationID: "c1", Verb: PresenceJoin, UserID: "u1", Occupancy: -1}, &st)
	assert.Equal(t, 1, st.Presence.ByConversationID["c1"].Occupancy)
}
