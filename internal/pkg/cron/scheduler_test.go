package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(context.Background())

	var calls int
	s.AddJob("ok", time.Minute, func(ctx context.Context) error { calls++; return nil })
	s.AddJob("broken", time.Minute, func(ctx context.Context) error { return errors.New("boom") })

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken: boom")
	assert.Equal(t, 1, calls)
	require.Len(t, s.jobs, 2)
	assert.Equal(t, "ok", s.jobs[0].Name)
	assert.Equal(t, "broken", s.jobs[1].Name)
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(context.Background())

	var calls atomic.Int32
	s.AddJob("tick", 10*time.Millisecond, func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})

	s.Start()
	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}
