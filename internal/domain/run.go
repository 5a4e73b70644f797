package domain

import "time"

// Run is one dispatched command as recorded in the run history.
type Run struct {
	ID        string
	Command   string // space separated tree path, e.g. "prims uds vin"
	Args      []string
	StartedAt time.Time
	EndedAt   *time.Time
	ExitCode  *int
}

// Finished reports whether the run has recorded an exit code.
func (r Run) Finished() bool {
	return r.ExitCode != nil
}

// Duration returns the wall time of a finished run, or zero.
func (r Run) Duration() time.Duration {
	if r.EndedAt == nil {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
