package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogOpObserver_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogOpObserver(&buf)

	obs.ObserveOp(context.Background(), OpEvent{
		Op:       OpInstantiateActivities,
		JobID:    "job-1",
		Duration: 42 * time.Millisecond,
		Counts:   map[string]int{"created": 5},
	})

	line := buf.String()
	assert.Contains(t, line, "level=INFO")
	assert.Contains(t, line, "msg=schedule_op")
	assert.Contains(t, line, "op=instantiate_activities")
	assert.Contains(t, line, "job_id=job-1")
	assert.Contains(t, line, "duration_ms=42")
	assert.Contains(t, line, "created=5")
}

func TestLogOpObserver_ErrorsLogAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogOpObserver(&buf)

	obs.ObserveOp(context.Background(), OpEvent{
		Op:    OpRecalculateSchedule,
		JobID: "job-2",
		Err:   errors.New("job not found"),
	})

	line := buf.String()
	assert.Contains(t, line, "level=ERROR")
	assert.Contains(t, line, "op=recalculate_schedule")
	assert.Contains(t, line, `error="job not found"`)
}

func TestNewLogOpObserver_NilWriterIsNoop(t *testing.T) {
	obs := NewLogOpObserver(nil)
	assert.IsType(t, NoopOpObserver{}, obs)
}

func TestOpEvent_Success(t *testing.T) {
	assert.True(t, OpEvent{}.Success())
	assert.False(t, OpEvent{Err: errors.New("boom")}.Success())
}

func TestOpObserverOrNoop(t *testing.T) {
	var buf bytes.Buffer
	logObs := NewLogOpObserver(&buf)

	assert.IsType(t, NoopOpObserver{}, opObserverOrNoop(nil))
	assert.IsType(t, NoopOpObserver{}, opObserverOrNoop([]OpObserver{nil}))
	assert.Equal(t, logObs, opObserverOrNoop([]OpObserver{nil, logObs}))
}
