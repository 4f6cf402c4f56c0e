package command

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/observ"
	"github.com/lalith-99/teamchat/internal/realtime"
	"github.com/lalith-99/teamchat/internal/realtime/realtimetest"
	"github.com/lalith-99/teamchat/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncStore applies actions synchronously so tests can assert the exact
// dispatch sequence without waiting on a goroutine.
type syncStore struct {
	mu      sync.Mutex
	state   state.AppState
	actions []state.Action
}

func newSyncStore() *syncStore {
	return &syncStore{state: state.NewAppState("space_default")}
}

func (s *syncStore) Dispatch(a state.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, a)
	state.Reduce(a, &s.state)
}

func (s *syncStore) Snapshot() state.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *syncStore) actionTypes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	types := make([]string, 0, len(s.actions))
	for _, a := range s.actions {
		types = append(types, fmt.Sprintf("%T", a))
	}
	return types
}

func seededFake() *realtimetest.Fake {
	fake := realtimetest.NewFake()
	fake.Users["u1"] = models.NewUser("u1", "Craig", "")
	fake.Users["u2"] = models.NewUser("u2", "Dana", "")
	fake.Memberships["u1"] = map[string]models.UserMembership{
		"c1": {ID: "c1"},
	}
	fake.Conversations["c1"] = models.NewConversation("c1", "General", "")
	return fake
}

func TestLoginHappyPath(t *testing.T) {
	fake := seededFake()
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()

	result, err := cmds.Login(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", result.UserID)
	assert.Equal(t, fake.Token, result.SessionToken)

	assert.Equal(t, []string{
		"state.PerformingLogin",
		"state.UserRetrieved",
		"state.MembershipsRetrieved",
		"state.LoggedIn",
	}, st.actionTypes())

	snapshot := st.Snapshot()
	assert.Equal(t, "u1", snapshot.Auth.UserID)
	assert.False(t, snapshot.Auth.IsLoggingIn)

	// Own channel plus every membership channel, all with presence.
	withPresence, ok := fake.Subscribed["u1"]
	assert.True(t, ok && withPresence)
	withPresence, ok = fake.Subscribed["c1"]
	assert.True(t, ok && withPresence)
}

func TestLoginFailureShortCircuits(t *testing.T) {
	fake := seededFake()
	fake.Errs["fetchMemberships"] = errors.New("service down")
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()

	_, err := cmds.Login(context.Background(), "u1")
	require.Error(t, err)

	assert.Equal(t, []string{
		"state.PerformingLogin",
		"state.UserRetrieved",
		"state.LoginFailed",
	}, st.actionTypes())
	assert.Empty(t, fake.Subscribed, "subscribe must not run after a failed step")

	snapshot := st.Snapshot()
	assert.False(t, snapshot.Auth.IsLoggingIn)
	assert.Empty(t, snapshot.Auth.UserID)
}

func TestLoginUnknownUser(t *testing.T) {
	fake := realtimetest.NewFake()
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()

	_, err := cmds.Login(context.Background(), "u_missing")
	require.ErrorIs(t, err, realtime.ErrNotFound)
	assert.Equal(t, []string{
		"state.PerformingLogin",
		"state.LoginFailed",
	}, st.actionTypes())
}

func login(t *testing.T, cmds *Commands) {
	t.Helper()
	_, err := cmds.Login(context.Background(), "u1")
	require.NoError(t, err)
}

func TestSyncSenderData(t *testing.T) {
	fake := seededFake()
	fake.History["c1"] = []models.Message{{
		ConversationID: "c1",
		Timetoken:      100,
		Payload:        models.MessagePayload{SenderID: "u2", Content: models.TextContent("hi")},
	}}
	fake.Presence["c1"] = models.PresenceSnapshot{OccupantIDs: []string{"u2"}, Occupancy: 1}

	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	require.NoError(t, cmds.SyncSenderData(context.Background()))

	snapshot := st.Snapshot()
	assert.Equal(t, "General", snapshot.Conversations.Conversations["c1"].Name)
	assert.Equal(t, 1, snapshot.Messages.ByConversationID["c1"].Len())
	assert.Equal(t, 1, snapshot.Presence.ByConversationID["c1"].Occupancy)

	types := st.actionTypes()
	assert.Contains(t, types, "state.SyncingSenderData")
	assert.Equal(t, "state.DataSyncComplete", types[len(types)-1])
}

func TestSyncSenderDataToleratesConversationFetchFailure(t *testing.T) {
	fake := seededFake()
	fake.Errs["fetchConversation"] = errors.New("flaky")

	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	require.NoError(t, cmds.SyncSenderData(context.Background()))

	types := st.actionTypes()
	assert.Contains(t, types, "state.ConversationFetchFailed")
	assert.Equal(t, "state.DataSyncComplete", types[len(types)-1])
}

func TestSyncSenderDataRequiresLogin(t *testing.T) {
	st := newSyncStore()
	cmds := New(realtimetest.NewFake(), st, observ.Nop())
	defer cmds.Close()

	err := cmds.SyncSenderData(context.Background())
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSendMessageTagsEmoji(t *testing.T) {
	fake := seededFake()
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	msg, err := cmds.SendMessage(context.Background(), "c1", "🤯")
	require.NoError(t, err)
	assert.Equal(t, models.ContentEmoji, msg.Payload.Content.Kind())
	assert.Equal(t, "u1", msg.SenderID())

	require.Len(t, fake.Published, 1)
	assert.Equal(t, models.ContentEmoji, fake.Published[0].Payload.Content.Kind())

	snapshot := st.Snapshot()
	assert.Equal(t, 1, snapshot.Messages.ByConversationID["c1"].Len())
}

func TestSendMessageFailure(t *testing.T) {
	fake := seededFake()
	fake.Errs["publish"] = errors.New("gone")
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	_, err := cmds.SendMessage(context.Background(), "c1", "hi")
	require.Error(t, err)

	types := st.actionTypes()
	assert.Equal(t, "state.SendMessageFailed", types[len(types)-1])
	assert.Nil(t, st.Snapshot().Messages.ByConversationID["c1"])
}

func TestSendMessageRequiresLogin(t *testing.T) {
	st := newSyncStore()
	cmds := New(realtimetest.NewFake(), st, observ.Nop())
	defer cmds.Close()

	_, err := cmds.SendMessage(context.Background(), "c1", "hi")
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestJoinConversationsKeepsEdgesMatched(t *testing.T) {
	fake := seededFake()
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	require.NoError(t, cmds.JoinConversations(context.Background(), "c2"))

	snapshot := st.Snapshot()
	assert.Contains(t, snapshot.Memberships.ByUserID["u1"], "c2")
	assert.Contains(t, snapshot.Members.ByConversationID["c2"], "u1")

	withPresence, ok := fake.Subscribed["c2"]
	assert.True(t, ok && withPresence)
}

func TestLeaveConversationsKeepsEdgesMatched(t *testing.T) {
	fake := seededFake()
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	require.NoError(t, cmds.LeaveConversations(context.Background(), "c1"))

	snapshot := st.Snapshot()
	assert.NotContains(t, snapshot.Memberships.ByUserID["u1"], "c1")
	assert.NotContains(t, snapshot.Members.ByConversationID["c1"], "u1")
	assert.Contains(t, fake.Unsubscribed, "c1")
}

func TestFetchMembersBackfillsUserRecords(t *testing.T) {
	fake := seededFake()
	fake.Members["c1"] = map[string]models.ConversationMember{
		"u1": {ID: "u1"},
		"u2": {ID: "u2"},
	}
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	members, err := cmds.FetchMembers(context.Background(), "c1")
	require.NoError(t, err)
	assert.Len(t, members, 2)

	snapshot := st.Snapshot()
	assert.Contains(t, snapshot.Users.Users, "u2")
}

func TestListenerForwardsServiceEvents(t *testing.T) {
	fake := seededFake()
	st := newSyncStore()
	cmds := New(fake, st, observ.Nop())
	defer cmds.Close()
	login(t, cmds)

	fake.EmitMessage(realtime.MessageEvent{
		ConversationID: "c1",
		Timetoken:      500,
		Payload:        models.MessagePayload{SenderID: "u2", Content: models.TextContent("yo")},
	})
	fake.EmitPresence(realtime.PresenceEvent{
		ConversationID: "c1",
		Action:         realtime.PresenceJoin,
		UserID:         "u2",
		Occupancy:      1,
	})
	fake.EmitStatus(realtime.StatusConnected)

	snapshot := st.Snapshot()
	assert.Equal(t, 1, snapshot.Messages.ByConversationID["c1"].Len())
	assert.Contains(t, snapshot.Presence.ByConversationID["c1"].Occupants, "u2")
	assert.Equal(t, state.Connected, snapshot.Network.Status)
}
