// Package dispatch executes confirmed menu actions. The registry is the
// menu controller's ActionDispatcher: Invoke never blocks and never reports
// failures upward, so a slow or broken action cannot hold the menu open.
package dispatch

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"handy-menu/worker"
)

// Action executes one quick action. It runs on a worker goroutine with a
// deadline already applied to ctx.
type Action func(ctx context.Context) error

// Registry maps action ids to their implementations.
type Registry struct {
	pool    *worker.Pool
	timeout time.Duration

	mu      sync.RWMutex
	actions map[string]Action
}

// New creates a registry executing on pool. Each action gets at most
// timeout to finish; zero means 2 seconds, enough for a keystroke round
// trip without letting a hung script pin a worker.
func New(pool *worker.Pool, timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Registry{
		pool:    pool,
		timeout: timeout,
		actions: make(map[string]Action),
	}
}

// Register installs fn under id, replacing any previous registration.
func (r *Registry) Register(id string, fn Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[id] = fn
}

// Invoke runs the action fire-and-forget. Unknown ids and saturated
// workers are logged and dropped.
func (r *Registry) Invoke(actionID string) {
	fn, ok := r.lookup(actionID)
	if !ok {
		log.Printf("dispatch: unknown action %q", actionID)
		return
	}

	submitted := r.pool.Submit(context.Background(), func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, r.timeout)
		defer cancel()
		return fn(ctx)
	}, func(err error) {
		if err != nil {
			log.Printf("dispatch: action %q failed: %v", actionID, err)
		}
	})
	if !submitted {
		log.Printf("dispatch: action %q dropped, workers busy", actionID)
	}
}

// lookup resolves an action id. Registered ids win; "app:<path>" ids
// activate an application without prior registration, so configured menu
// items can map straight to app launches ("Safari:app:/Applications/Safari.app").
func (r *Registry) lookup(id string) (Action, bool) {
	r.mu.RLock()
	fn, ok := r.actions[id]
	r.mu.RUnlock()
	if ok {
		return fn, true
	}
	if path, found := strings.CutPrefix(id, "app:"); found && path != "" {
		return ActivateApp(path), true
	}
	return nil, false
}
