package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

// ApprovalFetch reads the current admission status of one business.
type ApprovalFetch func(ctx context.Context) (string, error)

// ApprovalWatcher polls an admission status on a fixed interval until the
// status leaves pending or the context is cancelled. There is no push channel
// for admin decisions; a pending session re-reads its own status and reacts
// on change.
//
// The watcher owns its ticker and performs at most one read at a time: a tick
// arriving while a previous read is still outstanding is skipped, not queued.
type ApprovalWatcher struct {
	interval time.Duration
	fetch    ApprovalFetch
	onChange func(status string)
	logger   zerolog.Logger

	inFlight   atomic.Bool
	lastStatus atomic.Value
}

// NewApprovalWatcher builds a watcher. onChange fires only when a fetched
// status differs from the last observed one.
func NewApprovalWatcher(interval time.Duration, fetch ApprovalFetch, onChange func(status string), logger zerolog.Logger) *ApprovalWatcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}

	w := &ApprovalWatcher{
		interval: interval,
		fetch:    fetch,
		onChange: onChange,
		logger:   logger.With().Str("component", "approval_watcher").Logger(),
	}
	w.lastStatus.Store(models.ApprovalPending)

	return w
}

// Run blocks until the status leaves pending or ctx is cancelled. The ticker
// is torn down deterministically on return.
func (w *ApprovalWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	done := make(chan struct{}, 1)

	// Read once immediately so a decision made before the watcher started is
	// picked up without waiting a full interval.
	if w.poll(ctx, done) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if w.poll(ctx, done) {
				return
			}
		case <-done:
			if status, ok := w.lastStatus.Load().(string); ok && status != models.ApprovalPending {
				return
			}
		}
	}
}

// LastStatus returns the most recently observed status.
func (w *ApprovalWatcher) LastStatus() string {
	status, _ := w.lastStatus.Load().(string)
	return status
}

// poll launches a read unless one is already outstanding. It reports whether
// the watcher should stop because a terminal status was already observed.
func (w *ApprovalWatcher) poll(ctx context.Context, done chan<- struct{}) bool {
	if status, ok := w.lastStatus.Load().(string); ok && status != models.ApprovalPending {
		return true
	}

	if !w.inFlight.CompareAndSwap(false, true) {
		w.logger.Debug().Msg("skipping tick, previous read still outstanding")
		return false
	}

	go func() {
		defer w.inFlight.Store(false)

		status, err := w.fetch(ctx)
		if err != nil {
			w.logger.Warn().Err(err).Msg("approval status read failed")
			return
		}

		previous, _ := w.lastStatus.Load().(string)
		if status != previous {
			w.lastStatus.Store(status)
			if w.onChange != nil {
				w.onChange(status)
			}
		}

		select {
		case done <- struct{}{}:
		default:
		}
	}()

	return false
}
