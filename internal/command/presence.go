package command

import (
	"context"
	"fmt"

	"github.com/lalith-99/teamchat/internal/state"
)

// HereNow queries the current occupancy of the given channels and replaces
// the presence snapshots wholesale.
func (c *Commands) HereNow(ctx context.Context, channels []string) error {
	presence, err := c.svc.HereNow(ctx, channels)
	if err != nil {
		err = fmt.Errorf("here now: %w", err)
		c.store.Dispatch(state.HereNowFailed{Channels: channels, Err: err})
		return err
	}
	c.store.Dispatch(state.HereNowRetrieved{Presence: presence})
	return nil
}
