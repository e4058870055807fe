package authz

import (
	"context"
	"log/slog"
	"time"
)

// Source supplies the current role name and matrix, typically the
// /auth/me-equivalent lookup for the session's user.
type Source interface {
	FetchPermissions(ctx context.Context) (roleName string, matrix Matrix, err error)
}

// Refresher polls a Source on a fixed interval and overwrites the session
// state atomically. Like State, it serves API consumers that cache their
// permissions between polls of /permissions; the server advertises the
// cadence there as refreshSeconds. Stop halts the poll and clears the
// state synchronously; a fetch already in flight when Stop runs is
// discarded, so a late result can never repopulate permissions after
// logout.
type Refresher struct {
	state    *State
	source   Source
	interval time.Duration
	logger   *slog.Logger

	cancel  context.CancelFunc
	done    chan struct{}
	stopped bool
}

// NewRefresher constructs a Refresher. A non-positive interval falls back
// to 30 seconds.
func NewRefresher(state *State, source Source, interval time.Duration, logger *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Refresher{state: state, source: source, interval: interval, logger: logger}
}

// Start launches the poll loop. It refreshes immediately, then on every
// tick until Stop or context cancellation.
func (r *Refresher) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	go r.run(ctx)
}

func (r *Refresher) run(ctx context.Context) {
	defer close(r.done)
	r.refresh(ctx)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	roleName, matrix, err := r.source.FetchPermissions(ctx)
	if err != nil {
		if r.logger != nil && ctx.Err() == nil {
			r.logger.Warn("permission refresh", slog.Any("error", err))
		}
		return
	}
	r.apply(roleName, matrix)
}

func (r *Refresher) apply(roleName string, matrix Matrix) {
	r.state.mu.Lock()
	defer r.state.mu.Unlock()
	if r.stopped {
		return
	}
	r.state.role = RoleFor(roleName, matrix)
	r.state.set = true
}

// Stop halts the poll and clears permission state. After Stop returns, the
// state denies everything and stays cleared even if a fetch was in flight.
func (r *Refresher) Stop() {
	r.state.mu.Lock()
	r.stopped = true
	r.state.role = Role{}
	r.state.set = false
	r.state.mu.Unlock()

	if r.cancel != nil {
		r.cancel()
		<-r.done
	}
}
