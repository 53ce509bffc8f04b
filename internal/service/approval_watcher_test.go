package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/talentbridge/talentbridge-go-api/internal/models"
)

func TestApprovalWatcherStopsOnDecision(t *testing.T) {
	var mu sync.Mutex
	polls := 0
	var changes []string

	fetch := func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		polls++
		if polls < 3 {
			return models.ApprovalPending, nil
		}
		return models.ApprovalApproved, nil
	}

	onChange := func(status string) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, status)
	}

	watcher := NewApprovalWatcher(5*time.Millisecond, fetch, onChange, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		watcher.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		t.Fatal("watcher did not stop after a terminal status")
	}

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, polls, 3)
	require.Equal(t, []string{models.ApprovalApproved}, changes)
	require.Equal(t, models.ApprovalApproved, watcher.LastStatus())
}

func TestApprovalWatcherFiresOnChangeOnce(t *testing.T) {
	var mu sync.Mutex
	var changes []string

	fetch := func(ctx context.Context) (string, error) {
		return models.ApprovalRejected, nil
	}

	watcher := NewApprovalWatcher(5*time.Millisecond, fetch, func(status string) {
		mu.Lock()
		defer mu.Unlock()
		changes = append(changes, status)
	}, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	watcher.Run(ctx)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{models.ApprovalRejected}, changes)
}

func TestApprovalWatcherSurvivesFetchErrors(t *testing.T) {
	var mu sync.Mutex
	polls := 0

	fetch := func(ctx context.Context) (string, error) {
		mu.Lock()
		defer mu.Unlock()
		polls++
		if polls == 1 {
			return "", errors.New("status endpoint unavailable")
		}
		return models.ApprovalApproved, nil
	}

	watcher := NewApprovalWatcher(5*time.Millisecond, fetch, nil, testLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	watcher.Run(ctx)

	require.Equal(t, models.ApprovalApproved, watcher.LastStatus())
}

func TestApprovalWatcherRespectsCancellation(t *testing.T) {
	fetch := func(ctx context.Context) (string, error) {
		return models.ApprovalPending, nil
	}

	watcher := NewApprovalWatcher(5*time.Millisecond, fetch, nil, testLogger())

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		watcher.Run(ctx)
		close(done)
	}()

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on cancellation")
	}

	require.Equal(t, models.ApprovalPending, watcher.LastStatus())
}
