package command

import (
	"context"
	"fmt"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/realtime"
	"github.com/lalith-99/teamchat/internal/state"
)

// SendMessage publishes composed text to a conversation channel. The
// content is tagged emoji when the text is entirely emoji. The confirmed
// message is dispatched immediately; the subscribe echo de-duplicates by
// timetoken.
func (c *Commands) SendMessage(ctx context.Context, conversationID, text string) (models.Message, error) {
	senderID := c.store.Snapshot().Auth.UserID
	if senderID == "" {
		return models.Message{}, ErrNotLoggedIn
	}

	payload := models.MessagePayload{
		SenderID: senderID,
		Content:  models.TextContent(text),
	}
	timetoken, err := c.svc.Publish(ctx, conversationID, payload)
	if err != nil {
		err = fmt.Errorf("publish: %w", err)
		c.store.Dispatch(state.SendMessageFailed{ConversationID: conversationID, Err: err})
		return models.Message{}, err
	}

	msg := models.Message{
		ConversationID: conversationID,
		Timetoken:      timetoken,
		Payload:        payload,
	}
	c.store.Dispatch(state.MessageReceived{Message: msg})
	return msg, nil
}

// FetchHistory pulls up to historyPageSize recent messages per channel and
// records them wholesale.
func (c *Commands) FetchHistory(ctx context.Context, channels []string) error {
	history, err := c.svc.FetchHistory(ctx, channels, historyPageSize)
	if err != nil {
		err = fmt.Errorf("fetch history: %w", err)
		c.store.Dispatch(state.HistoryFetchFailed{Channels: channels, Err: err})
		return err
	}
	c.store.Dispatch(state.MessageHistoryRetrieved{Messages: history})
	return nil
}

func messageFrom(ev realtime.MessageEvent) models.Message {
	return models.Message{
		ConversationID: ev.ConversationID,
		Timetoken:      ev.Timetoken,
		Payload:        ev.Payload,
	}
}
