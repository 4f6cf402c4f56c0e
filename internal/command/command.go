// Package command implements the asynchronous units of work that call the
// messaging service and describe the outcome through dispatched actions.
// Commands never mutate state directly; every state change flows through an
// action. Failures are caught at the service-call boundary, surfaced as a
// failed action plus a returned error, and never retried automatically.
package command

import (
	"sync"
	"sync/atomic"

	"github.com/lalith-99/teamchat/internal/realtime"
	"github.com/lalith-99/teamchat/internal/state"
	"go.uber.org/zap"
)

// Store is the narrow store surface commands need: an action sink and a
// read-only snapshot accessor.
type Store interface {
	Dispatch(state.Action)
	Snapshot() state.AppState
}

// Commands bundles the explicit dependencies of every command: the service,
// the store surface, and a logger. No command captures hidden mutable
// context beyond these.
type Commands struct {
	svc    realtime.Service
	store  Store
	logger *zap.Logger

	attempts atomic.Int64

	listenOnce     sync.Once
	removeListener func()
}

func New(svc realtime.Service, store Store, logger *zap.Logger) *Commands {
	return &Commands{
		svc:    svc,
		store:  store,
		logger: logger,
	}
}

// Close detaches the service listener if one was attached.
func (c *Commands) Close() {
	if c.removeListener != nil {
		c.removeListener()
	}
}
