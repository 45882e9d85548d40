package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCleaner struct {
	calls   atomic.Int32
	removed int64
	err     error
}

func (f *fakeCleaner) DeleteOrphanEntries(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	return f.removed, f.err
}

type fakeEnqueuer struct {
	calls atomic.Int32
	err   error
}

func (f *fakeEnqueuer) EnqueueBucketListCleanup(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.err != nil {
		return "", f.err
	}
	return "task-1", nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/15 * * * *"))
	assert.Error(t, ValidateCronSchedule("every night"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestNextRunTime(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	next, err := NextRunTime("0 3 * * *", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 2, 3, 0, 0, 0, time.UTC), next)

	_, err = NextRunTime("bogus", now)
	assert.Error(t, err)
}

func TestBucketListCleanupScheduler_StartStop(t *testing.T) {
	s := NewBucketListCleanupScheduler(&fakeCleaner{}, nil, "0 3 * * *")

	assert.Nil(t, s.GetNextRunTime())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	// Second start is a no-op
	require.NoError(t, s.Start(context.Background()))

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	// Stopping twice is safe
	s.Stop()
}

func TestBucketListCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewBucketListCleanupScheduler(&fakeCleaner{}, nil, "not a schedule")

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestBucketListCleanupScheduler_StopsWithContext(t *testing.T) {
	s := NewBucketListCleanupScheduler(&fakeCleaner{}, nil, "0 3 * * *")

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestBucketListCleanupScheduler_LastResult(t *testing.T) {
	cleaner := &fakeCleaner{removed: 4}
	s := NewBucketListCleanupScheduler(cleaner, nil, "0 3 * * *")

	assert.Nil(t, s.LastResult())

	s.runCleanup()

	result := s.LastResult()
	require.NotNil(t, result)
	assert.Equal(t, int64(4), result.Removed)
	assert.NoError(t, result.Err)
	assert.False(t, result.At.IsZero())

	// Callers get a copy
	result.Removed = 99
	assert.Equal(t, int64(4), s.LastResult().Removed)
}

func TestBucketListCleanupScheduler_RunsInlineWithoutEnqueuer(t *testing.T) {
	cleaner := &fakeCleaner{removed: 2}
	s := NewBucketListCleanupScheduler(cleaner, nil, "0 3 * * *")

	s.runCleanup()

	assert.Equal(t, int32(1), cleaner.calls.Load())
	require.NotNil(t, s.LastResult())
	assert.Equal(t, int64(2), s.LastResult().Removed)
}

func TestBucketListCleanupScheduler_PrefersEnqueuer(t *testing.T) {
	cleaner := &fakeCleaner{}
	enqueuer := &fakeEnqueuer{}
	s := NewBucketListCleanupScheduler(cleaner, enqueuer, "0 3 * * *")

	s.runCleanup()

	assert.Equal(t, int32(0), cleaner.calls.Load())
	assert.Equal(t, int32(1), enqueuer.calls.Load())
	assert.Equal(t, "task-1", s.LastResult().TaskID)
}

func TestBucketListCleanupScheduler_RecordsErrors(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("storage unavailable")}
	s := NewBucketListCleanupScheduler(cleaner, nil, "0 3 * * *")

	s.runCleanup()

	require.NotNil(t, s.LastResult())
	assert.EqualError(t, s.LastResult().Err, "storage unavailable")

	enq := &fakeEnqueuer{err: errors.New("queue closed")}
	s = NewBucketListCleanupScheduler(cleaner, enq, "0 3 * * *")
	s.runCleanup()
	assert.EqualError(t, s.LastResult().Err, "queue closed")
}
