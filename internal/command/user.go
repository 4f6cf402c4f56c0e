package command

import (
	"context"
	"fmt"

	"github.com/lalith-99/teamchat/internal/models"
	"github.com/lalith-99/teamchat/internal/state"
)

// FetchUser pulls one user record from the service.
func (c *Commands) FetchUser(ctx context.Context, userID string) (models.User, error) {
	user, err := c.svc.FetchUser(ctx, userID)
	if err != nil {
		err = fmt.Errorf("fetch user: %w", err)
		c.store.Dispatch(state.UserFetchFailed{UserID: userID, Err: err})
		return models.User{}, err
	}
	c.store.Dispatch(state.UserRetrieved{User: user})
	return user, nil
}
