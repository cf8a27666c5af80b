package scheduler

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRejectsBadSpec(t *testing.T) {
	s := New(Config{}, zerolog.Nop())

	_, err := s.Add("sweep", "every fifteen minutes", 0, func(context.Context) error { return nil })
	assert.Error(t, err)

	_, err = s.Add("sweep", "*/15 * * * *", 0, nil)
	assert.Error(t, err)

	_, err = s.Add("sweep", "*/15 * * * *", 0, func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestLocation(t *testing.T) {
	assert.Equal(t, time.UTC, New(Config{}, zerolog.Nop()).Location())
	assert.Equal(t, time.UTC, New(Config{Timezone: "Mars/Olympus"}, zerolog.Nop()).Location())
	assert.Equal(t, "Asia/Colombo", New(Config{Timezone: "Asia/Colombo"}, zerolog.Nop()).Location().String())
}

func TestJobRunsWithTimeout(t *testing.T) {
	s := New(Config{DefaultTimeout: time.Minute}, zerolog.Nop())

	var deadline time.Time
	var hasDeadline bool
	id, err := s.Add("sweep", "*/15 * * * *", 0, func(ctx context.Context) error {
		deadline, hasDeadline = ctx.Deadline()
		return nil
	})
	require.NoError(t, err)

	s.c.Entry(id).WrappedJob.Run()
	require.True(t, hasDeadline)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)
}

func TestJobErrorsAndPanicsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	s := New(Config{}, zerolog.New(&buf))

	failing, err := s.Add("failing", "@hourly", 0, func(context.Context) error { return errors.New("store offline") })
	require.NoError(t, err)
	panicking, err := s.Add("panicking", "@hourly", 0, func(context.Context) error { panic("boom") })
	require.NoError(t, err)

	s.c.Entry(failing).WrappedJob.Run()
	assert.Contains(t, buf.String(), "store offline")

	assert.NotPanics(t, func() { s.c.Entry(panicking).WrappedJob.Run() })
	assert.Contains(t, buf.String(), "boom")
}

func TestStartStop(t *testing.T) {
	s := New(Config{}, zerolog.Nop())
	_, err := s.Add("noop", "@every 1h", 0, func(context.Context) error { return nil })
	require.NoError(t, err)

	s.Start(context.Background())
	s.Start(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
	assert.NoError(t, s.Stop(ctx))
}

func TestJobStartsWhileLifecycleLockHeld(t *testing.T) {
	s := New(Config{}, zerolog.Nop())
	ran := make(chan struct{})
	id, err := s.Add("sweep", "@hourly", 0, func(context.Context) error {
		close(ran)
		return nil
	})
	require.NoError(t, err)

	s.mu.Lock()
	defer s.mu.Unlock()
	go s.c.Entry(id).WrappedJob.Run()

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job blocked on the scheduler lock")
	}
}

func TestStopWaitsForRunningJob(t *testing.T) {
	s := New(Config{}, zerolog.Nop())
	started := make(chan struct{})
	release := make(chan struct{})
	var jobErr error
	_, err := s.Add("slow", "@every 1s", 0, func(ctx context.Context) error {
		select {
		case <-started:
			return nil
		default:
			close(started)
		}
		<-release
		jobErr = ctx.Err()
		return nil
	})
	require.NoError(t, err)
	s.Start(context.Background())

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job never started")
	}

	stopped := make(chan error, 1)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		stopped <- s.Stop(ctx)
	}()

	select {
	case <-stopped:
		t.Fatal("Stop returned while the job was still running")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-stopped:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return after the job finished")
	}
	assert.NoError(t, jobErr)
}
