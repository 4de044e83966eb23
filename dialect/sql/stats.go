package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultSlowThreshold is the duration above which a statement is reported
// as slow.
const DefaultSlowThreshold = 500 * time.Millisecond

// ExecStats holds statement execution statistics.
type ExecStats struct {
	// Statements is the number of statements executed.
	Statements atomic.Int64
	// Duration is the total time spent executing, in nanoseconds.
	Duration atomic.Int64
	// Slow is the number of statements exceeding the slow threshold.
	Slow atomic.Int64
	// Errors is the number of failed statements.
	Errors atomic.Int64
}

// Snapshot returns a snapshot of the current statistics.
func (s *ExecStats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Statements: s.Statements.Load(),
		Duration:   time.Duration(s.Duration.Load()),
		Slow:       s.Slow.Load(),
		Errors:     s.Errors.Load(),
	}
}

// StatsSnapshot is a point-in-time snapshot of execution statistics.
type StatsSnapshot struct {
	Statements int64
	Duration   time.Duration
	Slow       int64
	Errors     int64
}

// AvgDuration returns the average statement duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	if s.Statements == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.Statements)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf("statements=%d duration=%s avg=%s slow=%d errors=%d",
		s.Statements, s.Duration, s.AvgDuration(), s.Slow, s.Errors)
}

// SlowStatementHook is called when a statement exceeds the slow threshold.
type SlowStatementHook func(ctx context.Context, statement string, duration time.Duration)

// slowStatementLog logs slow statements to l.
func slowStatementLog(l *slog.Logger) SlowStatementHook {
	return func(ctx context.Context, statement string, duration time.Duration) {
		l.WarnContext(ctx, "slow statement detected", "duration", duration, "statement", statement)
	}
}

func (s *ExecStats) record(ctx context.Context, statement string, start time.Time, err error, threshold time.Duration, hook SlowStatementHook) {
	duration := time.Since(start)
	s.Statements.Add(1)
	s.Duration.Add(int64(duration))
	if err != nil {
		s.Errors.Add(1)
	}
	if duration > threshold {
		s.Slow.Add(1)
		if hook != nil {
			hook(ctx, statement, duration)
		}
	}
}
