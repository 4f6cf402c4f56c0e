// Package realtimetest provides an in-memory realtime.Service for tests.
package realtimetest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/realtime"
)

// Fake is an in-memory realtime.Service. Seed its maps before use; set
// Errs["op"] to make that operation fail. It records subscriptions and
// calls so tests can assert the interaction.
type Fake struct {
	mu sync.Mutex

	Users         map[string]models.User
	Conversations map[string]models.Conversation
	Memberships   map[string]map[string]models.UserMembership
	Members       map[string]map[string]models.ConversationMember
	History       map[string][]models.Message
	Presence      map[string]models.PresenceSnapshot

	// Errs forces a failure for an operation name: "login", "subscribe",
	// "unsubscribe", "publish", "fetchUser", "fetchConversation",
	// "fetchMemberships", "fetchMembers", "join", "leave",
	// "fetchHistory", "hereNow".
	Errs map[string]error

	Subscribed   map[string]bool // channel -> withPresence
	Unsubscribed []string
	Published    []models.Message
	Calls        []string

	Token  string
	lastTT models.Timetoken

	listeners map[int]realtime.Listener
	nextID    int
}

func NewFake() *Fake {
	return &Fake{
		Users:         make(map[string]models.User),
		Conversations: make(map[string]models.Conversation),
		Memberships:   make(map[string]map[string]models.UserMembership),
		Members:       make(map[string]map[string]models.ConversationMember),
		History:       make(map[string][]models.Message),
		Presence:      make(map[string]models.PresenceSnapshot),
		Errs:          make(map[string]error),
		Subscribed:    make(map[string]bool),
		Token:         "session-token",
		listeners:     make(map[int]realtime.Listener),
	}
}

func (f *Fake) fail(op string) error {
	f.Calls = append(f.Calls, op)
	return f.Errs[op]
}

func (f *Fake) Login(ctx context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("login"); err != nil {
		return "", err
	}
	if _, ok := f.Users[userID]; !ok {
		return "", fmt.Errorf("login %s: %w", userID, realtime.ErrNotFound)
	}
	return f.Token, nil
}

func (f *Fake) AddListener(l realtime.Listener) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextID
	f.nextID++
	f.listeners[id] = l
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.listeners, id)
	}
}

func (f *Fake) Subscribe(ctx context.Context, channels []string, withPresence bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("subscribe"); err != nil {
		return err
	}
	for _, ch := range channels {
		f.Subscribed[ch] = withPresence
	}
	return nil
}

func (f *Fake) Unsubscribe(ctx context.Context, channels []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("unsubscribe"); err != nil {
		return err
	}
	for _, ch := range channels {
		delete(f.Subscribed, ch)
		f.Unsubscribed = append(f.Unsubscribed, ch)
	}
	return nil
}

func (f *Fake) Publish(ctx context.Context, channel string, payload models.MessagePayload) (models.Timetoken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("publish"); err != nil {
		return 0, err
	}
	tt := models.NewTimetoken(time.Now())
	if tt <= f.lastTT {
		tt = f.lastTT + 1
	}
	f.lastTT = tt
	msg := models.Message{ConversationID: channel, Timetoken: tt, Payload: payload}
	f.Published = append(f.Published, msg)
	f.History[channel] = append(f.History[channel], msg)
	return tt, nil
}

func (f *Fake) FetchUser(ctx context.Context, userID string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("fetchUser"); err != nil {
		return models.User{}, err
	}
	u, ok := f.Users[userID]
	if !ok {
		return models.User{}, fmt.Errorf("fetch user %s: %w", userID, realtime.ErrNotFound)
	}
	return u, nil
}

func (f *Fake) FetchConversation(ctx context.Context, conversationID string) (models.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("fetchConversation"); err != nil {
		return models.Conversation{}, err
	}
	c, ok := f.Conversations[conversationID]
	if !ok {
		return models.Conversation{}, fmt.Errorf("fetch conversation %s: %w", conversationID, realtime.ErrNotFound)
	}
	return c, nil
}

func (f *Fake) FetchMemberships(ctx context.Context, userID string) ([]models.UserMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("fetchMemberships"); err != nil {
		return nil, err
	}
	var out []models.UserMembership
	for _, m := range f.Memberships[userID] {
		out = append(out, m)
	}
	return out, nil
}

func (f *Fake) FetchMembers(ctx context.Context, conversationID string) ([]models.ConversationMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("fetchMembers"); err != nil {
		return nil, err
	}
	var out []models.ConversationMember
	for _, m := range f.Members[conversationID] {
		out = append(out, m)
	}
	return out, nil
}

func (f *Fake) Join(ctx context.Context, userID string, conversationIDs []string) ([]models.UserMembership, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("join"); err != nil {
		return nil, err
	}
	if f.Memberships[userID] == nil {
		f.Memberships[userID] = make(map[string]models.UserMembership)
	}
	now := time.Now()
	var out []models.UserMembership
	for _, id := range conversationIDs {
		m, ok := f.Memberships[userID][id]
		if !ok {
			m = models.UserMembership{ID: id, Created: now, Updated: now, ETag: "etag-" + id}
			f.Memberships[userID][id] = m
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *Fake) Leave(ctx context.Context, userID string, conversationIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("leave"); err != nil {
		return err
	}
	for _, id := range conversationIDs {
		delete(f.Memberships[userID], id)
	}
	return nil
}

func (f *Fake) FetchHistory(ctx context.Context, channels []string, limit int) (map[string][]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("fetchHistory"); err != nil {
		return nil, err
	}
	out := make(map[string][]models.Message)
	for _, ch := range channels {
		msgs := f.History[ch]
		if len(msgs) == 0 {
			continue
		}
		if limit > 0 && len(msgs) > limit {
			msgs = msgs[len(msgs)-limit:]
		}
		out[ch] = append([]models.Message(nil), msgs...)
	}
	return out, nil
}

func (f *Fake) HereNow(ctx context.Context, channels []string) (map[string]models.PresenceSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail("hereNow"); err != nil {
		return nil, err
	}
	out := make(map[string]models.PresenceSnapshot)
	for _, ch := range channels {
		if snap, ok := f.Presence[ch]; ok {
			out[ch] = snap
		}
	}
	return out, nil
}

func (f *Fake) Close() error { return nil }

// EmitMessage delivers a message event to registered listeners.
func (f *Fake) EmitMessage(ev realtime.MessageEvent) {
	for _, l := range f.snapshot() {
		if l.OnMessage != nil {
			l.OnMessage(ev)
		}
	}
}

// EmitPresence delivers a presence event to registered listeners.
func (f *Fake) EmitPresence(ev realtime.PresenceEvent) {
	for _, l := range f.snapshot() {
		if l.OnPresence != nil {
			l.OnPresence(ev)
		}
	}
}

// EmitStatus delivers a status change to registered listeners.
func (f *Fake) EmitStatus(status realtime.Status) {
	for _, l := range f.snapshot() {
		if l.OnStatus != nil {
			l.OnStatus(status)
		}
	}
}

func (f *Fake) snapshot() []realtime.Listener {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]realtime.Listener, 0, len(f.listeners))
	for _, l := range f.listeners {
		out = append(out, l)
	}
	return out
}

var _ realtime.Service = (*Fake)(nil)
