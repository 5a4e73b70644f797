package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ecuprobe/cli/internal/domain"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(time.Second)
		return t
	}
}

func TestStart_AssignsIDAndTime(t *testing.T) {
	s := newTestStore(t)
	s.now = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	run, err := s.Start(context.Background(), domain.Run{
		Command: "prims uds vin",
		Args:    []string{"--target", "tcp-lines://127.0.0.1:13400"},
	})
	require.NoError(t, err)

	require.NotEmpty(t, run.ID)
	require.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), run.StartedAt)
	require.False(t, run.Finished())
}

func TestFinish_RecordsExitCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.now = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	run, err := s.Start(ctx, domain.Run{Command: "prims uds ping"})
	require.NoError(t, err)
	require.NoError(t, s.Finish(ctx, run.ID, 3))

	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	require.Equal(t, run.ID, got.ID)
	require.Equal(t, "prims uds ping", got.Command)
	require.True(t, got.Finished())
	require.Equal(t, 3, *got.ExitCode)
	require.Equal(t, time.Second, got.Duration())
}

func TestFinish_UnknownRun(t *testing.T) {
	s := newTestStore(t)

	err := s.Finish(context.Background(), "missing", 0)
	require.ErrorIs(t, err, ErrRunNotFound)
}

func TestRecent_NewestFirstWithLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.now = fixedClock(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))

	for _, cmd := range []string{"version", "prims uds vin", "scan uds identifiers"} {
		_, err := s.Start(ctx, domain.Run{Command: cmd, Args: []string{"a", "b c"}})
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "scan uds identifiers", runs[0].Command)
	require.Equal(t, "prims uds vin", runs[1].Command)
	require.Equal(t, []string{"a", "b c"}, runs[0].Args)

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestRecent_OrdersWithinOneSecond(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	seed := []struct {
		command string
		offset  time.Duration
	}{
		{command: "a-100ms", offset: 100 * time.Millisecond},
		{command: "b-120ms", offset: 120 * time.Millisecond},
		{command: "c-whole", offset: 0},
		{command: "d-next", offset: time.Second},
	}
	for _, r := range seed {
		_, err := s.Start(ctx, domain.Run{Command: r.command, StartedAt: base.Add(r.offset)})
		require.NoError(t, err)
	}

	runs, err := s.Recent(ctx, 0)
	require.NoError(t, err)

	var order []string
	for _, r := range runs {
		order = append(order, r.Command)
	}
	require.Equal(t, []string{"d-next", "b-120ms", "a-100ms", "c-whole"}, order)
	require.Equal(t, base.Add(120*time.Millisecond), runs[1].StartedAt)

	latest, err := s.Recent(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "d-next", latest[0].Command)
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "runs.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(context.Background(), path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}
