package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRuns struct {
	mu       sync.Mutex
	created  []string
	statuses map[string]string
}

func (m *memoryRuns) CreateRun(_ context.Context, jobType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := jobType + "-" + string(rune('a'+len(m.created)))
	m.created = append(m.created, id)
	return id, nil
}

func (m *memoryRuns) CompleteRun(_ context.Context, runID, status string, _ []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.statuses == nil {
		m.statuses = map[string]string{}
	}
	m.statuses[runID] = status
	return nil
}

type countingObserver struct {
	mu    sync.Mutex
	count map[string]int
}

func (o *countingObserver) RecordJobRun(jobType, status string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.count == nil {
		o.count = map[string]int{}
	}
	o.count[jobType+":"+status]++
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunJobRecordsRun(t *testing.T) {
	runs := &memoryRuns{}
	obs := &countingObserver{}
	svc := New(WithLogger(quietLogger()), WithRunStore(runs), WithObserver(obs))

	details, err := svc.runJob(context.Background(), job{Type: JobBreachCheck, Run: func(context.Context) (any, error) {
		return map[string]bool{"breachDetected": false}, nil
	}})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"breachDetected": false}, details)
	require.Len(t, runs.created, 1)
	assert.Equal(t, StatusCompleted, runs.statuses[runs.created[0]])
	assert.Equal(t, 1, obs.count[JobBreachCheck+":"+StatusCompleted])
}

func TestRunJobFailure(t *testing.T) {
	runs := &memoryRuns{}
	svc := New(WithLogger(quietLogger()), WithRunStore(runs))

	boom := errors.New("boom")
	_, err := svc.runJob(context.Background(), job{Type: "x", Run: func(context.Context) (any, error) { return nil, boom }})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, StatusFailed, runs.statuses[runs.created[0]])
}

func TestEnqueueFullQueue(t *testing.T) {
	svc := New(WithLogger(quietLogger()), WithQueueSize(1))
	noop := func(context.Context) (any, error) { return nil, nil }

	assert.True(t, svc.Enqueue("a", noop))
	assert.False(t, svc.Enqueue("b", noop))
}

func TestScheduleRunsThroughWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := New(WithLogger(quietLogger()))
	svc.Start(ctx)

	ran := make(chan struct{}, 8)
	svc.Schedule(ctx, JobBreachCheck, 5*time.Millisecond, func(context.Context) (any, error) {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil, nil
	})

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		require.Fail(t, "scheduled job never ran")
	}
	cancel()
	svc.Wait()
}

func TestScheduleIgnoresNonPositiveInterval(t *testing.T) {
	svc := New(WithLogger(quietLogger()))
	svc.Schedule(context.Background(), "never", 0, func(context.Context) (any, error) {
		assert.Fail(t, "should not run")
		return nil, nil
	})
	svc.Wait()
}
