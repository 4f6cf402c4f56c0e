package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/state"
	"go.uber.org/zap"
)

// ErrNotLoggedIn is returned by commands that need an authenticated sender.
var ErrNotLoggedIn = errors.New("command: not logged in")

// LoginResult is the outcome of a successful login chain.
type LoginResult struct {
	UserID       string
	SessionToken string
}

// historyPageSize is how many messages per channel the sync fetches.
const historyPageSize = 50

// Login runs the login chain: configure the identity on the service, attach
// the event listener, fetch the sender's profile and memberships, then
// subscribe to the sender's own channel plus every membership channel with
// presence. Each step proceeds only after the previous one succeeded; the
// first failure dispatches loginFailed and short-circuits the rest.
//
// A completion arriving after a newer attempt has started is discarded by
// the auth reducer via the attempt id.
func (c *Commands) Login(ctx context.Context, userID string) (LoginResult, error) {
	attempt := c.attempts.Add(1)
	c.store.Dispatch(state.PerformingLogin{AttemptID: attempt})

	fail := func(step string, err error) (LoginResult, error) {
		err = fmt.Errorf("%s: %w", step, err)
		c.logger.Warn("login failed", zap.String("user_id", userID), zap.Error(err))
		c.store.Dispatch(state.LoginFailed{AttemptID: attempt, Err: err})
		return LoginResult{}, err
	}

	token, err := c.svc.Login(ctx, userID)
	if err != nil {
		return fail("configure identity", err)
	}
	c.ensureListener()

	user, err := c.svc.FetchUser(ctx, userID)
	if err != nil {
		return fail("fetch user", err)
	}
	c.store.Dispatch(state.UserRetrieved{User: user})

	memberships, err := c.svc.FetchMemberships(ctx, userID)
	if err != nil {
		return fail("fetch memberships", err)
	}
	c.store.Dispatch(state.MembershipsRetrieved{UserID: userID, Memberships: memberships})

	channels := append([]string{user.ID}, conversationIDs(memberships)...)
	if err := c.svc.Subscribe(ctx, channels, true); err != nil {
		return fail("subscribe", err)
	}

	c.store.Dispatch(state.LoggedIn{AttemptID: attempt, UserID: user.ID})
	c.logger.Info("logged in", zap.String("user_id", user.ID))
	return LoginResult{UserID: user.ID, SessionToken: token}, nil
}

// SyncSenderData refreshes the sender's memberships, re-subscribes, and
// pulls message history and presence for every membership channel.
func (c *Commands) SyncSenderData(ctx context.Context) error {
	c.store.Dispatch(state.SyncingSenderData{})

	userID := c.store.Snapshot().Auth.UserID
	if userID == "" {
		return ErrNotLoggedIn
	}

	fail := func(step string, err error) error {
		err = fmt.Errorf("%s: %w", step, err)
		c.store.Dispatch(state.DataSyncFailed{Err: err})
		return err
	}

	memberships, err := c.svc.FetchMemberships(ctx, userID)
	if err != nil {
		return fail("fetch memberships", err)
	}
	c.store.Dispatch(state.MembershipsRetrieved{UserID: userID, Memberships: memberships})

	channels := conversationIDs(memberships)
	if err := c.svc.Subscribe(ctx, append([]string{userID}, channels...), true); err != nil {
		return fail("subscribe", err)
	}

	for _, conversationID := range channels {
		conv, err := c.svc.FetchConversation(ctx, conversationID)
		if err != nil {
			c.store.Dispatch(state.ConversationFetchFailed{ConversationID: conversationID, Err: err})
			continue
		}
		c.store.Dispatch(state.ConversationRetrieved{Conversation: conv})
	}

	if len(channels) > 0 {
		history, err := c.svc.FetchHistory(ctx, channels, historyPageSize)
		if err != nil {
			return fail("fetch history", err)
		}
		c.store.Dispatch(state.MessageHistoryRetrieved{Messages: history})

		presence, err := c.svc.HereNow(ctx, channels)
		if err != nil {
			return fail("here now", err)
		}
		c.store.Dispatch(state.HereNowRetrieved{Presence: presence})
	}

	c.store.Dispatch(state.DataSyncComplete{})
	return nil
}

// DeepLink records a deep-link conversation target.
func (c *Commands) DeepLink(conversationID string) {
	c.store.Dispatch(state.DeepLinkConversation{ConversationID: conversationID})
}

func conversationIDs(memberships []models.UserMembership) []string {
	ids := make([]string, 0, len(memberships))
	for _, m := range memberships {
		ids = append(ids, m.ConversationID())
	}
	return ids
}
