// Package testutil holds helpers shared by package tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ecuprobe/cli/internal/domain"
	"github.com/ecuprobe/cli/internal/store"
)

// NewTestStore opens an in-memory run store closed when the test finishes.
func NewTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err, "failed to open run store")

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

// SeedRuns records runs in order. A run with an exit code is also finished.
// The stored runs, with their generated ids, are returned.
func SeedRuns(t *testing.T, s domain.RunStore, runs []domain.Run) []domain.Run {
	t.Helper()

	out := make([]domain.Run, 0, len(runs))
	for _, run := range runs {
		started, err := s.Start(context.Background(), run)
		require.NoError(t, err, "failed to seed run: %+v", run)

		if run.ExitCode != nil {
			err = s.Finish(context.Background(), started.ID, *run.ExitCode)
			require.NoError(t, err, "failed to finish run %s", started.ID)
		}

		out = append(out, started)
	}
	return out
}

// ExitCode returns a pointer to code for building runs.
func ExitCode(code int) *int {
	return &code
}
