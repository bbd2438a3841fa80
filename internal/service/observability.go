package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Op identifies one of the bulk scheduling operations for telemetry.
type Op string

const (
	OpInstantiateActivities Op = "instantiate_activities"
	OpRecalculateSchedule   Op = "recalculate_schedule"
	OpSyncPredecessors      Op = "sync_predecessors"
)

// OpEvent describes one completed scheduling operation: which job it ran
// against, how long it took, the row counts it produced, and how it
// ended. Counts carries operation-specific outcomes such as "created"
// or "changed".
type OpEvent struct {
	Op        Op
	JobID     string
	Duration  time.Duration
	Err       error
	Counts    map[string]int
	StartedAt time.Time
}

// Success reports whether the operation completed without error.
func (e OpEvent) Success() bool { return e.Err == nil }

// OpObserver receives completed scheduling operations. Implementations
// run on the request path and must not block.
type OpObserver interface {
	ObserveOp(ctx context.Context, event OpEvent)
}

// NoopOpObserver discards all events.
type NoopOpObserver struct{}

func (NoopOpObserver) ObserveOp(context.Context, OpEvent) {}

type logOpObserver struct {
	logger *slog.Logger
}

// NewLogOpObserver returns an observer that writes each scheduling
// operation to w as a structured log line. A nil writer yields a
// NoopOpObserver.
func NewLogOpObserver(w io.Writer) OpObserver {
	if w == nil {
		return NoopOpObserver{}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return &logOpObserver{logger: slog.New(handler)}
}

func (o *logOpObserver) ObserveOp(ctx context.Context, event OpEvent) {
	attrs := []any{
		slog.String("op", string(event.Op)),
		slog.String("job_id", event.JobID),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
	}
	for k, v := range event.Counts {
		attrs = append(attrs, slog.Int(k, v))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		o.logger.ErrorContext(ctx, "schedule_op", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "schedule_op", attrs...)
}

// opObserverOrNoop returns the first non-nil observer, falling back to
// the noop implementation.
func opObserverOrNoop(observers []OpObserver) OpObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopOpObserver{}
}
