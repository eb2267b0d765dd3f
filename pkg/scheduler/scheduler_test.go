package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHook struct {
	runs   atomic.Int32
	result bool
}

func (h *countingHook) Cron(ctx context.Context) bool {
	h.runs.Add(1)
	return h.result
}

func TestRunOnce(t *testing.T) {
	hook := &countingHook{result: true}

	assert.True(t, RunOnce(context.Background(), "adaptivequiz", hook))
	assert.Equal(t, int32(1), hook.runs.Load())
}

func TestAddRejectsInvalidSpec(t *testing.T) {
	s := New(time.UTC, time.Second)

	err := s.Add("not a spec", "adaptivequiz", &countingHook{})
	assert.Error(t, err)
	assert.Equal(t, 0, s.Entries())
}

func TestScheduledHookRuns(t *testing.T) {
	s := New(time.UTC, time.Second)
	hook := &countingHook{}
	require.NoError(t, s.Add("@every 1s", "adaptivequiz", hook))
	assert.Equal(t, 1, s.Entries())

	s.Start()
	assert.Eventually(t, func() bool { return hook.runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
