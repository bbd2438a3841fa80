package domain

import "errors"

var (
	// ErrInvalidState marks a request rejected by a validation rule before
	// any write happened.
	ErrInvalidState = errors.New("invalid state")

	// ErrChecklistIncomplete blocks the transition to done while checklist
	// items remain open.
	ErrChecklistIncomplete = errors.New("checklist items incomplete")
)
