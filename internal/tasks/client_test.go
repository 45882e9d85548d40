package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "library.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestTasksDBPath(t *testing.T) {
	assert.Equal(t, filepath.Join(".", "library-tasks.db"), TasksDBPath("./library.db"))
	assert.Equal(t, filepath.Join("/data", "books-tasks.sqlite"), TasksDBPath("/data/books.sqlite"))
	assert.Equal(t, filepath.Join(".", "library-tasks"), TasksDBPath("library"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "library.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(filepath.Join(tmpDir, "library-tasks.db"))
	assert.NoError(t, err, "tasks database should be created")

	// The library file belongs to the database package
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, client.Close())
}

func TestClientStartStop(t *testing.T) {
	client := newTestClient(t)

	// Stop before Start is a no-op
	assert.True(t, client.Stop(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)
	client.Start(ctx)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

type fakeCleaner struct {
	calls   atomic.Int32
	deleted int64
	err     error
	done    chan struct{}
}

func (f *fakeCleaner) DeleteOrphanEntries(ctx context.Context) (int64, error) {
	f.calls.Add(1)
	if f.done != nil {
		defer close(f.done)
	}
	return f.deleted, f.err
}

func TestCleanupBucketListTaskConfig(t *testing.T) {
	cfg := CleanupBucketListTask{}.Config()

	assert.Equal(t, "cleanup_bucket_list", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Backoff)
	assert.Equal(t, time.Minute, cfg.Timeout)
	require.NotNil(t, cfg.Retention)
	assert.Equal(t, 24*time.Hour, cfg.Retention.Duration)
}

func TestCleanupBucketListProcessor(t *testing.T) {
	cleaner := &fakeCleaner{deleted: 3}
	process := CleanupBucketListProcessor(cleaner)

	require.NoError(t, process(context.Background(), CleanupBucketListTask{}))
	assert.Equal(t, int32(1), cleaner.calls.Load())
}

func TestCleanupBucketListProcessor_Error(t *testing.T) {
	cleaner := &fakeCleaner{err: errors.New("disk on fire")}
	process := CleanupBucketListProcessor(cleaner)

	err := process(context.Background(), CleanupBucketListTask{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup bucket list")
}

func TestCleanupBucketListProcessor_NilCleaner(t *testing.T) {
	process := CleanupBucketListProcessor(nil)
	assert.Error(t, process(context.Background(), CleanupBucketListTask{}))
}

func TestEnqueueBucketListCleanup_RunsProcessor(t *testing.T) {
	client := newTestClient(t)

	cleaner := &fakeCleaner{deleted: 1, done: make(chan struct{})}
	client.Register(NewCleanupBucketListQueue(cleaner))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer stopCancel()
		client.Stop(stopCtx)
	}()

	id, err := client.EnqueueBucketListCleanup(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	select {
	case <-cleaner.done:
		assert.Equal(t, int32(1), cleaner.calls.Load())
	case <-time.After(5 * time.Second):
		t.Fatal("cleanup task was not executed within timeout")
	}
}

// echoTask checks that arbitrary queues can share the client.
type echoTask struct {
	Value string `json:"value"`
}

func (t echoTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "echo",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	client := newTestClient(t)

	executed := make(chan string, 1)
	client.Register(backlite.NewQueue(func(ctx context.Context, task echoTask) error {
		executed <- task.Value
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.Start(ctx)

	ids, err := client.Add(echoTask{Value: "hello"}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 5*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)

	filled := Config{Workers: 4}.withDefaults()
	assert.Equal(t, 4, filled.Workers)
	assert.Equal(t, 5*time.Minute, filled.ReleaseAfter)
}
