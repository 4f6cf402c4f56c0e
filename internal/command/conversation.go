package command

import (
	"context"
	"fmt"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/state"
)

// FetchConversation pulls one conversation record from the service.
func (c *Commands) FetchConversation(ctx context.Context, conversationID string) (models.Conversation, error) {
	conv, err := c.svc.FetchConversation(ctx, conversationID)
	if err != nil {
		err = fmt.Errorf("fetch conversation: %w", err)
		c.store.Dispatch(state.ConversationFetchFailed{ConversationID: conversationID, Err: err})
		return models.Conversation{}, err
	}
	c.store.Dispatch(state.ConversationRetrieved{Conversation: conv})
	return conv, nil
}

// FetchMembers pulls a conversation's member list, then fills in any user
// records the store is missing so presence views can resolve names.
func (c *Commands) FetchMembers(ctx context.Context, conversationID string) ([]models.ConversationMember, error) {
	members, err := c.svc.FetchMembers(ctx, conversationID)
	if err != nil {
		err = fmt.Errorf("fetch members: %w", err)
		c.store.Dispatch(state.MemberFetchFailed{ConversationID: conversationID, Err: err})
		return nil, err
	}
	c.store.Dispatch(state.MembersRetrieved{ConversationID: conversationID, Members: members})

	known := c.store.Snapshot().Users.Users
	for _, m := range members {
		if _, ok := known[m.UserID()]; ok {
			continue
		}
		user, err := c.svc.FetchUser(ctx, m.UserID())
		if err != nil {
			c.store.Dispatch(state.UserFetchFailed{UserID: m.UserID(), Err: err})
			continue
		}
		c.store.Dispatch(state.UserRetrieved{User: user})
	}
	return members, nil
}
