package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/lalith-99/teamchat/internal/auth"
	"github.com/lalith-99/teamchat/internal/command"
	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/observ"
	"github.com/lalith-99/teamchat/internal/realtime/realtimetest"
	"github.com/lalith-99/teamchat/internal/state"
	"github.com/lalith-99/teamchat/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type fixture struct {
	fake   *realtimetest.Fake
	store  *store.Store
	router *gin.Engine
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	fake := realtimetest.NewFake()
	fake.Users["u1"] = models.NewUser("u1", "Craig", "")
	fake.Memberships["u1"] = map[string]models.UserMembership{"c1": {ID: "c1"}}
	fake.Conversations["c1"] = models.NewConversation("c1", "General", "")

	st := store.New(state.NewAppState("space_default"))
	t.Cleanup(st.Close)

	cmds := command.New(fake, st, observ.Nop())
	t.Cleanup(cmds.Close)

	server := NewServer(cmds, st, testSecret, observ.Nop())

	token, err := auth.GenerateToken("u1", testSecret, time.Hour)
	require.NoError(t, err)

	return &fixture{
		fake:   fake,
		store:  st,
		router: server.Router("test"),
		token:  token,
	}
}

func (f *fixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) waitFor(t *testing.T, cond func(state.AppState) bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond(f.store.Snapshot()) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("state condition not met before deadline")
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodGet, "/v1/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginEndpoint(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/v1/auth/login", "", `{"userId":"u1"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp loginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, f.fake.Token, resp.Token)

	f.waitFor(t, func(s state.AppState) bool { return s.Auth.UserID == "u1" })
}

func TestLoginUnknownUser(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/v1/auth/login", "", `{"userId":"nobody"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginValidation(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/v1/auth/login", "", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthRequired(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/v1/status", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/v1/status", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/auth/login", "", `{"userId":"u1"}`).Code)
	f.waitFor(t, func(s state.AppState) bool { return s.Auth.UserID == "u1" })

	w := f.do(http.MethodGet, "/v1/status", f.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "u1", resp.UserID)
	assert.False(t, resp.Connected)
}

func TestSendAndListMessages(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/auth/login", "", `{"userId":"u1"}`).Code)
	f.waitFor(t, func(s state.AppState) bool { return s.Auth.UserID == "u1" })

	w := f.do(http.MethodPost, "/v1/conversations/c1/messages", f.token, `{"text":"Hello!"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var sent messageResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.Equal(t, "text", sent.Kind)
	assert.Equal(t, "u1", sent.SenderID)

	f.waitFor(t, func(s state.AppState) bool {
		log := s.Messages.ByConversationID["c1"]
		return log != nil && log.Len() == 1
	})

	w = f.do(http.MethodGet, "/v1/conversations/c1/messages", f.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Messages []messageResponse `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Messages, 1)
	assert.Equal(t, "Hello!", listed.Messages[0].Text)
	assert.Equal(t, "Craig", listed.Messages[0].SenderName)
}

func TestListConversationsSortedAndFiltered(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/auth/login", "", `{"userId":"u1"}`).Code)
	f.waitFor(t, func(s state.AppState) bool { return s.Auth.UserID == "u1" })

	f.store.Dispatch(state.MembershipsRetrieved{UserID: "u1", Memberships: []models.UserMembership{
		{ID: "space_default"},
		{ID: "c_intro"},
		{ID: "c_apple"},
	}})
	f.store.Dispatch(state.ConversationsRetrieved{Conversations: []models.Conversation{
		{ID: "space_default", Name: "Home"},
		{ID: "c_intro", Name: models.PinnedConversationName},
		{ID: "c_apple", Name: "Apple"},
	}})
	f.waitFor(t, func(s state.AppState) bool { return len(s.Conversations.Conversations) == 3 })

	w := f.do(http.MethodGet, "/v1/conversations", f.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Conversations []conversationResponse `json:"conversations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Conversations, 2)
	assert.Equal(t, models.PinnedConversationName, listed.Conversations[0].Name)
	assert.Equal(t, "Apple", listed.Conversations[1].Name)
}

func TestMembersEndpoint(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(http.MethodPost, "/v1/auth/login", "", `{"userId":"u1"}`).Code)
	f.waitFor(t, func(s state.AppState) bool { return s.Auth.UserID == "u1" })

	f.store.Dispatch(state.UsersRetrieved{Users: []models.User{
		{ID: "u2", Name: "Dana"},
	}})
	f.store.Dispatch(state.MembersRetrieved{ConversationID: "c1", Members: []models.ConversationMember{
		{ID: "u1"}, {ID: "u2"},
	}})
	f.store.Dispatch(state.HereNowRetrieved{Presence: map[string]models.PresenceSnapshot{
		"c1": {OccupantIDs: []string{"u2"}, Occupancy: 1},
	}})
	f.waitFor(t, func(s state.AppState) bool { return len(s.Members.ByConversationID["c1"]) == 2 })

	w := f.do(http.MethodGet, "/v1/conversations/c1/members", f.token, "")
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Present []memberResponse `json:"present"`
		Absent  []memberResponse `json:"absent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Present, 1)
	require.Len(t, listed.Absent, 1)
	assert.Equal(t, "Dana", listed.Present[0].Name)
	assert.NotEmpty(t, listed.Present[0].AvatarColor)
	assert.Equal(t, "D", listed.Present[0].Initials)
}

func TestDeepLinkEndpoint(t *testing.T) {
	f := newFixture(t)
	w := f.do(http.MethodPost, "/v1/deeplink", f.token, `{"conversationId":"c_linked"}`)
	require.Equal(t, http.StatusNoContent, w.Code)

	f.waitFor(t, func(s state.AppState) bool {
		return s.Auth.DeepLinkConversationID == "c_linked"
	})
}
