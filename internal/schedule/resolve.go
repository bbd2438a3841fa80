package schedule

import (
	"time"

	"github.com/mfletch/jobsite/internal/domain"
)

// Window is an activity's resolved start/end span, inclusive on both ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// WindowSet is the working set of one scheduling pass, keyed by sort order.
// It is built incrementally while walking entries in ascending sort order
// and discarded when the pass completes.
type WindowSet map[int]Window

// Span derives the window covered by estimatedDays working days beginning
// at start: end = start advanced by estimatedDays-1 working days.
func Span(start time.Time, estimatedDays int) Window {
	s := DateOnly(start)
	return Window{Start: s, End: AddWorkingDays(s, estimatedDays-1)}
}

// ResolveStart computes an activity's start date from its predecessor's
// resolved window, the relationship type, and the activity's own duration.
// Unknown or empty relationships fall back to finish-to-start. The result
// is always clamped onto a working day.
func ResolveStart(pred Window, rel domain.Relationship, estimatedDays int) time.Time {
	var candidate time.Time
	switch rel {
	case domain.RelStartToStart:
		candidate = pred.Start
	case domain.RelFinishToFinish:
		// Chosen so the successor's end lands on the predecessor's end.
		candidate = SubtractWorkingDays(pred.End, estimatedDays-1)
	case domain.RelStartToFinish:
		// Successor's end lands on the predecessor's start.
		candidate = SubtractWorkingDays(pred.Start, estimatedDays-1)
	default:
		candidate = NextWorkingDay(pred.End)
	}
	return EnsureWorkingDay(candidate)
}

// Entry is one schedulable unit fed to ResolvePass, in template or
// job-activity form.
type Entry struct {
	SortOrder            int
	EstimatedDays        int
	PredecessorSortOrder *int
	Relationship         domain.Relationship

	// Anchor is the fallback start used when the entry has no predecessor
	// or its predecessor's window is absent from the set. Zero means the
	// pass anchor applies.
	Anchor *time.Time
}

// FallbackFunc is invoked when an entry references a predecessor whose
// window has not been resolved. It receives the entry and the dangling
// predecessor sort order; the pass proceeds with the entry's anchor.
type FallbackFunc func(entry Entry, predecessor int)

// ResolvePass walks entries in ascending sort order and resolves every
// window in a single forward pass. Because a predecessor's sort order is
// strictly less than its successor's, each predecessor window exists by
// the time it is needed; onFallback fires only on data inconsistencies.
// Entries must already be sorted by sort order.
func ResolvePass(entries []Entry, passAnchor time.Time, onFallback FallbackFunc) WindowSet {
	anchor := EnsureWorkingDay(passAnchor)
	resolved := make(WindowSet, len(entries))

	for _, e := range entries {
		start := anchor
		if e.Anchor != nil {
			start = EnsureWorkingDay(*e.Anchor)
		}

		if p := e.PredecessorSortOrder; p != nil && *p < e.SortOrder {
			if pred, ok := resolved[*p]; ok {
				start = ResolveStart(pred, e.Relationship, e.EstimatedDays)
			} else if onFallback != nil {
				onFallback(e, *p)
			}
		}

		resolved[e.SortOrder] = Span(start, e.EstimatedDays)
	}
	return resolved
}

// ChainSubtasks lays out durations sequentially inside a window beginning
// at parentStart: the first span starts at parentStart, each later span
// starts the working day after the previous one ends.
func ChainSubtasks(parentStart time.Time, estimatedDays []int) []Window {
	windows := make([]Window, 0, len(estimatedDays))
	next := EnsureWorkingDay(parentStart)
	for _, days := range estimatedDays {
		w := Span(next, days)
		windows = append(windows, w)
		next = NextWorkingDay(w.End)
	}
	return windows
}
