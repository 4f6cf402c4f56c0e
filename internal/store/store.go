// Package store serializes all state mutation through a single dispatch
// goroutine. Reducers never race each other and need no locking; everything
// outside the dispatch path only ever reads cloned snapshots.
package store

import (
	"sync"

	"github.com/lalith-99/teamchat/internal/state"
)

// DispatchFunc applies one action.
type DispatchFunc func(state.Action)

// Middleware wraps the reducer application step. Middleware runs on the
// dispatch goroutine, in registration order.
type Middleware func(next DispatchFunc) DispatchFunc

// Store owns the application state. Construct with New and inject where
// needed; there is no package-level instance.
type Store struct {
	mu    sync.RWMutex
	state state.AppState
	subs  map[int]func(state.AppState)
	next  int

	apply DispatchFunc

	closeMu sync.Mutex
	closed  bool
	actions chan state.Action
	wg      sync.WaitGroup
}

// New starts the dispatch loop over the given initial state.
func New(initial state.AppState, middleware ...Middleware) *Store {
	s := &Store{
		state:   initial,
		subs:    make(map[int]func(state.AppState)),
		actions: make(chan state.Action, 64),
	}
	apply := DispatchFunc(s.reduce)
	for i := len(middleware) - 1; i >= 0; i-- {
		apply = middleware[i](apply)
	}
	s.apply = apply

	s.wg.Add(1)
	go s.loop()
	return s
}

func (s *Store) loop() {
	defer s.wg.Done()
	for action := range s.actions {
		s.apply(action)
	}
}

func (s *Store) reduce(action state.Action) {
	s.mu.Lock()
	state.Reduce(action, &s.state)
	snapshot := s.state.Clone()
	subs := make([]func(state.AppState), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// Dispatch queues an action for the loop. Safe from any goroutine; actions
// apply in dispatch order. Dispatch after Close is a no-op.
func (s *Store) Dispatch(action state.Action) {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return
	}
	s.actions <- action
	s.closeMu.Unlock()
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() state.AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every applied action.
// fn runs on the dispatch goroutine and must not block. The returned
// function unsubscribes.
func (s *Store) Subscribe(fn func(state.AppState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Close drains queued actions and stops the loop.
func (s *Store) Close() {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return
	}
	s.closed = true
	close(s.actions)
	s.closeMu.Unlock()

	s.wg.Wait()
}
