// Package embedded implements the realtime service on Redis pub/sub for
// event fan-out and presence, with Postgres repositories holding entity
// metadata and message history. It is the development and self-hosted
// stand-in for a managed messaging provider.
package embedded

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/lalith-99/teamchat/internal/auth"
	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/realtime"
	"github.com/lalith-99/teamchat/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	messagePrefix  = "chan:"
	presencePrefix = "pres:"
	occupantsKey   = "presence:"

	defaultTokenTTL = 24 * time.Hour
)

// Options carries the dependencies of the embedded service.
type Options struct {
	Redis         *redis.Client
	Users         repository.UserRepository
	Conversations repository.ConversationRepository
	Memberships   repository.MembershipRepository
	Messages      repository.MessageRepository
	JWTSecret     string
	TokenTTL      time.Duration
	Logger        *zap.Logger
}

// Service implements realtime.Service. One instance serves one client
// identity, established by Login.
type Service struct {
	rdb           *redis.Client
	users         repository.UserRepository
	conversations repository.ConversationRepository
	memberships   repository.MembershipRepository
	messages      repository.MessageRepository
	jwtSecret     string
	tokenTTL      time.Duration
	logger        *zap.Logger

	mu        sync.Mutex
	userID    string
	pubsub    *redis.PubSub
	announced map[string]struct{} // channels we hold presence on
	lastTT    map[string]models.Timetoken
	closed    bool

	listenerMu sync.Mutex
	listeners  map[int]realtime.Listener
	nextID     int

	readerWG sync.WaitGroup
}

func New(opts Options) *Service {
	ttl := opts.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Service{
		rdb:           opts.Redis,
		users:         opts.Users,
		conversations: opts.Conversations,
		memberships:   opts.Memberships,
		messages:      opts.Messages,
		jwtSecret:     opts.JWTSecret,
		tokenTTL:      ttl,
		logger:        opts.Logger,
		announced:     make(map[string]struct{}),
		lastTT:        make(map[string]models.Timetoken),
		listeners:     make(map[int]realtime.Listener),
	}
}

func (s *Service) Login(ctx context.Context, userID string) (string, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("login %s: %w", userID, realtime.ErrNotFound)
	}

	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	s.userID = userID
	s.mu.Unlock()

	s.logger.Info("client identity configured", zap.String("user_id", userID))
	return token, nil
}

func (s *Service) AddListener(l realtime.Listener) func() {
	s.listenerMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.listenerMu.Unlock()

	return func() {
		s.listenerMu.Lock()
		delete(s.listeners, id)
		s.listenerMu.Unlock()
	}
}

func (s *Service) snapshotListeners() []realtime.Listener {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()
	out := make([]realtime.Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func (s *Service) emitStatus(status realtime.Status) {
	for _, l := range s.snapshotListeners() {
		if l.OnStatus != nil {
			l.OnStatus(status)
		}
	}
}

func (s *Service) Subscribe(ctx context.Context, channels []string, withPresence bool) error {
	if len(channels) == 0 {
		return nil
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fmt.Errorf("subscribe: service closed")
	}
	userID := s.userID
	if s.pubsub == nil {
		// The pubsub outlives the subscribe call; the reader goroutine
		// runs until Close.
		s.pubsub = s.rdb.Subscribe(context.Background())
		s.readerWG.Add(1)
		go s.readLoop(s.pubsub)
	}
	pubsub := s.pubsub
	s.mu.Unlock()

	if userID == "" {
		return fmt.Errorf("subscribe: not logged in")
	}

	s.emitStatus(realtime.StatusConnecting)

	topics := make([]string, 0, len(channels)*2)
	for _, ch := range channels {
		topics = append(topics, messagePrefix+ch)
		if withPresence {
			topics = append(topics, presencePrefix+ch)
		}
	}
	if err := pubsub.Subscribe(ctx, topics...); err != nil {
		s.emitStatus(realtime.StatusNotConnected)
		return fmt.Errorf("subscribe: %w", err)
	}

	if withPresence {
		for _, ch := range channels {
			if err := s.announce(ctx, ch, userID); err != nil {
				return err
			}
		}
	}

	s.emitStatus(realtime.StatusConnected)
	return nil
}

func (s *Service) Unsubscribe(ctx context.Context, channels []string) error {
	if len(channels) == 0 {
		return nil
	}

	s.mu.Lock()
	pubsub := s.pubsub
	userID := s.userID
	s.mu.Unlock()

	for _, ch := range channels {
		if err := s.withdraw(ctx, ch, userID); err != nil {
			return err
		}
	}

	if pubsub != nil {
		topics := make([]string, 0, len(channels)*2)
		for _, ch := range channels {
			topics = append(topics, messagePrefix+ch, presencePrefix+ch)
		}
		if err := pubsub.Unsubscribe(ctx, topics...); err != nil {
			return fmt.Errorf("unsubscribe: %w", err)
		}
	}
	return nil
}

// announce adds the user to the channel's occupant set and broadcasts the
// join to subscribers.
func (s *Service) announce(ctx context.Context, channel, userID string) error {
	added, err := s.rdb.SAdd(ctx, occupantsKey+channel, userID).Result()
	if err != nil {
		return fmt.Errorf("announce presence: %w", err)
	}

	s.mu.Lock()
	s.announced[channel] = struct{}{}
	s.mu.Unlock()

	if added == 0 {
		return nil
	}
	return s.publishPresence(ctx, channel, realtime.PresenceJoin, userID)
}

func (s *Service) withdraw(ctx context.Context, channel, userID string) error {
	s.mu.Lock()
	_, held := s.announced[channel]
	delete(s.announced, channel)
	s.mu.Unlock()
	if !held {
		return nil
	}

	removed, err := s.rdb.SRem(ctx, occupantsKey+channel, userID).Result()
	if err != nil {
		return fmt.Errorf("withdraw presence: %w", err)
	}
	if removed == 0 {
		return nil
	}
	return s.publishPresence(ctx, channel, realtime.PresenceLeave, userID)
}

func (s *Service) publishPresence(ctx context.Context, channel string, action realtime.PresenceAction, userID string) error {
	occupancy, err := s.rdb.SCard(ctx, occupantsKey+channel).Result()
	if err != nil {
		return fmt.Errorf("presence occupancy: %w", err)
	}

	env := presenceEnvelope{
		Action:    string(action),
		UserID:    userID,
		Occupancy: int(occupancy),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encode presence event: %w", err)
	}
	if err := s.rdb.Publish(ctx, presencePrefix+channel, data).Err(); err != nil {
		return fmt.Errorf("publish presence event: %w", err)
	}
	return nil
}

func (s *Service) Publish(ctx context.Context, channel string, payload models.MessagePayload) (models.Timetoken, error) {
	s.mu.Lock()
	if s.userID == "" {
		s.mu.Unlock()
		return 0, fmt.Errorf("publish: not logged in")
	}
	// Timetokens are strictly increasing per channel even when the clock
	// stalls within a 100ns tick.
	tt := models.NewTimetoken(time.Now())
	if last := s.lastTT[channel]; tt <= last {
		tt = last + 1
	}
	s.lastTT[channel] = tt
	s.mu.Unlock()

	msg := models.Message{
		ConversationID: channel,
		Timetoken:      tt,
		Payload:        payload,
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return 0, fmt.Errorf("publish: %w", err)
	}

	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("publish: encode payload: %w", err)
	}
	env := messageEnvelope{
		Timetoken: int64(tt),
		Payload:   rawPayload,
	}
	data, err := json.Marshal(env)
	if err != nil {
		return 0, fmt.Errorf("publish: encode envelope: %w", err)
	}
	if err := s.rdb.Publish(ctx, messagePrefix+channel, data).Err(); err != nil {
		return 0, fmt.Errorf("publish: %w", err)
	}
	return tt, nil
}

func (s *Service) FetchUser(ctx context.Context, userID string) (models.User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("fetch user: %w", err)
	}
	if user == nil {
		return models.User{}, fmt.Errorf("fetch user %s: %w", userID, realtime.ErrNotFound)
	}
	return *user, nil
}

func (s *Service) FetchConversation(ctx context.Context, conversationID string) (models.Conversation, error) {
	conv, err := s.conversations.Get(ctx, conversationID)
	if err != nil {
		return models.Conversation{}, fmt.Errorf("fetch conversation: %w", err)
	}
	if conv == nil {
		return models.Conversation{}, fmt.Errorf("fetch conversation %s: %w", conversationID, realtime.ErrNotFound)
	}
	return *conv, nil
}

func (s *Service) FetchMemberships(ctx context.Context, userID string) ([]models.UserMembership, error) {
	memberships, err := s.memberships.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch memberships: %w", err)
	}
	return memberships, nil
}

func (s *Service) FetchMembers(ctx context.Context, conversationID string) ([]models.ConversationMember, error) {
	members, err := s.memberships.ListForConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("fetch members: %w", err)
	}
	return members, nil
}

func (s *Service) Join(ctx context.Context, userID string, conversationIDs []string) ([]models.UserMembership, error) {
	memberships, err := s.memberships.Add(ctx, userID, conversationIDs)
	if err != nil {
		return nil, fmt.Errorf("join: %w", err)
	}
	return memberships, nil
}

func (s *Service) Leave(ctx context.Context, userID string, conversationIDs []string) error {
	if err := s.memberships.Remove(ctx, userID, conversationIDs); err != nil {
		return fmt.Errorf("leave: %w", err)
	}
	return nil
}

func (s *Service) FetchHistory(ctx context.Context, channels []string, limit int) (map[string][]models.Message, error) {
	history := make(map[string][]models.Message, len(channels))
	for _, ch := range channels {
		msgs, err := s.messages.ListRecent(ctx, ch, limit)
		if err != nil {
			return nil, fmt.Errorf("fetch history %s: %w", ch, err)
		}
		if len(msgs) > 0 {
			history[ch] = msgs
		}
	}
	return history, nil
}

func (s *Service) HereNow(ctx context.Context, channels []string) (map[string]models.PresenceSnapshot, error) {
	presence := make(map[string]models.PresenceSnapshot, len(channels))
	for _, ch := range channels {
		occupants, err := s.rdb.SMembers(ctx, occupantsKey+ch).Result()
		if err != nil {
			return nil, fmt.Errorf("here now %s: %w", ch, err)
		}
		sort.Strings(occupants)
		presence[ch] = models.PresenceSnapshot{
			OccupantIDs: occupants,
			Occupancy:   len(occupants),
		}
	}
	return presence, nil
}

func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	pubsub := s.pubsub
	userID := s.userID
	held := make([]string, 0, len(s.announced))
	for ch := range s.announced {
		held = append(held, ch)
	}
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, ch := range held {
		if err := s.withdraw(ctx, ch, userID); err != nil {
			s.logger.Warn("presence withdrawal failed on close",
				zap.String("channel", ch), zap.Error(err))
		}
	}

	if pubsub != nil {
		if err := pubsub.Close(); err != nil {
			return fmt.Errorf("close pubsub: %w", err)
		}
		s.readerWG.Wait()
	}
	return nil
}

var _ realtime.Service = (*Service)(nil)

type messageEnvelope struct {
	Timetoken int64           `json:"timetoken"`
	Payload   json.RawMessage `json:"message"`
}

type presenceEnvelope struct {
	Action    string   `json:"action"`
	UserID    string   `json:"uuid"`
	Occupancy int      `json:"occupancy"`
	Occupants []string `json:"occupants,omitempty"`
}

// readLoop decodes wire envelopes off the pubsub and fans them out to
// listeners. Malformed events are logged and dropped. Runs until the
// pubsub is closed.
func (s *Service) readLoop(pubsub *redis.PubSub) {
	defer s.readerWG.Done()
	defer s.emitStatus(realtime.StatusNotConnected)

	for msg := range pubsub.Channel() {
		switch {
		case strings.HasPrefix(msg.Channel, messagePrefix):
			s.handleMessage(strings.TrimPrefix(msg.Channel, messagePrefix), []byte(msg.Payload))
		case strings.HasPrefix(msg.Channel, presencePrefix):
			s.handlePresence(strings.TrimPrefix(msg.Channel, presencePrefix), []byte(msg.Payload))
		}
	}
}

func (s *Service) handleMessage(conversationID string, data []byte) {
	var env messageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("dropping malformed message event",
			zap.String("channel", conversationID), zap.Error(err))
		return
	}
	var payload models.MessagePayload
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		s.logger.Warn("dropping undecodable message payload",
			zap.String("channel", conversationID), zap.Error(err))
		return
	}

	ev := realtime.MessageEvent{
		ConversationID: conversationID,
		Timetoken:      models.Timetoken(env.Timetoken),
		Payload:        payload,
	}
	for _, l := range s.snapshotListeners() {
		if l.OnMessage != nil {
			l.OnMessage(ev)
		}
	}
}

func (s *Service) handlePresence(conversationID string, data []byte) {
	var env presenceEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.logger.Warn("dropping malformed presence event",
			zap.String("channel", conversationID), zap.Error(err))
		return
	}

	ev := realtime.PresenceEvent{
		ConversationID: conversationID,
		Action:         realtime.PresenceAction(env.Action),
		UserID:         env.UserID,
		Occupancy:      env.Occupancy,
		OccupantIDs:    env.Occupants,
	}
	for _, l := range s.snapshotListeners() {
		if l.OnPresence != nil {
			l.OnPresence(ev)
		}
	}
}
