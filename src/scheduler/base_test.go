package scheduler_test

import (
	"consolidator/src/scheduler"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduledTaskInvalidSpec(t *testing.T) {
	_, err := scheduler.NewScheduledTask(context.Background(), "every tuesday", func(context.Context) error {
		return nil
	})
	assert.Error(t, err)
}

func TestScheduledTaskRunsAndCancels(t *testing.T) {
	var runs atomic.Int32
	task, err := scheduler.NewScheduledTask(context.Background(), "@every 1s", func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("statement missing")
	})
	require.NoError(t, err)
	startedAt := time.Now()

	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	assert.True(t, task.Next().After(startedAt))

	task.Cancel()
	count := runs.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, count, runs.Load())
}

func TestScheduledTaskCancelStopsContext(t *testing.T) {
	started := make(chan struct{}, 1)
	var cancelled atomic.Bool
	task, err := scheduler.NewScheduledTask(context.Background(), "@every 1s", func(ctx context.Context) error {
		select {
		case started <- struct{}{}:
		default:
		}
		<-ctx.Done()
		cancelled.Store(true)
		return ctx.Err()
	})
	require.NoError(t, err)

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("task never started")
	}
	task.Cancel()
	assert.True(t, cancelled.Load())
}
