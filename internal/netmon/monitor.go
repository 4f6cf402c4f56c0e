// Package netmon tracks device-level network reachability, independent of
// the messaging transport's own connectivity. It dispatches a network
// action whenever the reachability signal flips.
package netmon

import (
	"context"
	"net"
	"time"

	"github.com/lalith-99/teamchat/internal/state"
	"go.uber.org/zap"
)

// Dispatcher is the action sink the monitor reports into.
type Dispatcher interface {
	Dispatch(state.Action)
}

// Monitor polls the host's interfaces on a fixed interval.
type Monitor struct {
	dispatcher Dispatcher
	logger     *zap.Logger
	interval   time.Duration
}

func New(dispatcher Dispatcher, logger *zap.Logger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Monitor{
		dispatcher: dispatcher,
		logger:     logger,
		interval:   interval,
	}
}

// Run dispatches monitoringStarted, then a reachabilityChanged action on
// every flip of the signal, until ctx is cancelled, and finally
// monitoringCancelled. It blocks; run it on its own goroutine.
func (m *Monitor) Run(ctx context.Context) {
	m.dispatcher.Dispatch(state.MonitoringStarted{})

	last := isReachable()
	m.dispatcher.Dispatch(state.ReachabilityChanged{IsConnected: last})

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.dispatcher.Dispatch(state.MonitoringCancelled{})
			return
		case <-ticker.C:
			now := isReachable()
			if now != last {
				m.logger.Info("device reachability changed", zap.Bool("connected", now))
				m.dispatcher.Dispatch(state.ReachabilityChanged{IsConnected: now})
				last = now
			}
		}
	}
}

// isReachable reports whether any non-loopback interface is up with an
// address assigned.
func isReachable() bool {
	ifaces, err := net.Interfaces()
	if err != nil {
		return false
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}
