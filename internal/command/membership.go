package command

import (
	"context"
	"fmt"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/state"
)

// FetchMemberships pulls the sender's membership list.
func (c *Commands) FetchMemberships(ctx context.Context, userID string) ([]models.UserMembership, error) {
	memberships, err := c.svc.FetchMemberships(ctx, userID)
	if err != nil {
		err = fmt.Errorf("fetch memberships: %w", err)
		c.store.Dispatch(state.MembershipFetchFailed{UserID: userID, Err: err})
		return nil, err
	}
	c.store.Dispatch(state.MembershipsRetrieved{UserID: userID, Memberships: memberships})
	return memberships, nil
}

// JoinConversations adds the sender to the given conversations. The
// membership edge exists on both sides of the relation, so the command
// dispatches matched actions for the user-side and conversation-side
// collections, then subscribes to the new channels with presence.
func (c *Commands) JoinConversations(ctx context.Context, conversationIDs ...string) error {
	userID := c.store.Snapshot().Auth.UserID
	if userID == "" {
		return ErrNotLoggedIn
	}

	memberships, err := c.svc.Join(ctx, userID, conversationIDs)
	if err != nil {
		err = fmt.Errorf("join: %w", err)
		c.store.Dispatch(state.JoinFailed{UserID: userID, ConversationIDs: conversationIDs, Err: err})
		return err
	}

	c.store.Dispatch(state.ConversationsJoined{UserID: userID, Memberships: memberships})
	for _, m := range memberships {
		c.store.Dispatch(state.MembersAdded{
			ConversationID: m.ConversationID(),
			Members: []models.ConversationMember{{
				ID:      userID,
				Created: m.Created,
				Updated: m.Updated,
				ETag:    m.ETag,
			}},
		})
	}

	if err := c.svc.Subscribe(ctx, conversationIDs, true); err != nil {
		return fmt.Errorf("subscribe after join: %w", err)
	}
	return nil
}

// LeaveConversations removes the sender from the given conversations,
// dispatching the matched edge removals and unsubscribing.
func (c *Commands) LeaveConversations(ctx context.Context, conversationIDs ...string) error {
	userID := c.store.Snapshot().Auth.UserID
	if userID == "" {
		return ErrNotLoggedIn
	}

	if err := c.svc.Leave(ctx, userID, conversationIDs); err != nil {
		err = fmt.Errorf("leave: %w", err)
		c.store.Dispatch(state.LeaveFailed{UserID: userID, ConversationIDs: conversationIDs, Err: err})
		return err
	}

	c.store.Dispatch(state.ConversationsLeft{UserID: userID, ConversationIDs: conversationIDs})
	for _, conversationID := range conversationIDs {
		c.store.Dispatch(state.MembersRemoved{ConversationID: conversationID, UserIDs: []string{userID}})
	}

	if err := c.svc.Unsubscribe(ctx, conversationIDs); err != nil {
		return fmt.Errorf("unsubscribe after leave: %w", err)
	}
	return nil
}
