package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/tracker/internal/config"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestNewClient(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tasks.db")

	client, err := NewClient(dbPath, DefaultConfig(), nil)
	require.NoError(t, err)
	require.NotNil(t, client)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "tasks database should be created")

	assert.NoError(t, client.Close())
}

func TestNewClient_RequiresPath(t *testing.T) {
	_, err := NewClient("", DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestClientStartStop(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	assert.True(t, client.Stop(stopCtx), "stop should succeed gracefully")
}

// TestTask is a simple task for testing
type TestTask struct {
	Value string `json:"value"`
}

func (t TestTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "test_task",
		MaxAttempts: 1,
		Backoff:     time.Second,
		Timeout:     5 * time.Second,
	}
}

func TestTaskEnqueue(t *testing.T) {
	client := newTestClient(t)

	executed := make(chan string, 1)
	queue := backlite.NewQueue(func(ctx context.Context, task TestTask) error {
		executed <- task.Value
		return nil
	})
	client.Register(queue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Enqueue(ctx, TestTask{Value: "hello"})
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case val := <-executed:
		assert.Equal(t, "hello", val)
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestRebuildProgressQueueRunsTask(t *testing.T) {
	client := newTestClient(t)
	rebuilder := newFakeRebuilder()
	client.Register(NewRebuildProgressQueue(rebuilder, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	_, err := client.Enqueue(ctx, RebuildProgressTask{Entity: "user_book", ID: "ub-1"})
	require.NoError(t, err)

	select {
	case id := <-rebuilder.done:
		assert.Equal(t, "ub-1", id)
	case <-time.After(5 * time.Second):
		t.Fatal("rebuild was not executed within timeout")
	}
}

func TestTaskConfigs(t *testing.T) {
	rebuild := RebuildProgressTask{}.Config()
	assert.Equal(t, "rebuild_progress", rebuild.Name)
	assert.Equal(t, 3, rebuild.MaxAttempts)
	assert.NotNil(t, rebuild.Retention)

	reconcile := ReconcileAllTask{}.Config()
	assert.Equal(t, "reconcile_all", reconcile.Name)
	assert.Equal(t, 1, reconcile.MaxAttempts)
	assert.Equal(t, 60*time.Minute, reconcile.Timeout)

	cleanup := CleanupAuditEventsTask{}.Config()
	assert.Equal(t, "cleanup_audit_events", cleanup.Name)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Minute, cfg.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.TaskTimeout)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 24*time.Hour, cfg.RetentionDuration)
}

func TestFromAppConfig(t *testing.T) {
	cfg := FromAppConfig(config.Tasks{Workers: 4, ReleaseAfter: time.Minute})

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
}
