package domain

import (
	"strconv"
	"time"
)

// FieldChange records one field's old and new value as display strings.
type FieldChange struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// ChangeSet accumulates typed field comparisons between an entity's old and
// new state. Unchanged fields are skipped, so an empty set means no edit.
type ChangeSet struct {
	changes []FieldChange
}

func (c *ChangeSet) Str(field, oldVal, newVal string) {
	if oldVal != newVal {
		c.changes = append(c.changes, FieldChange{Field: field, Old: oldVal, New: newVal})
	}
}

func (c *ChangeSet) Int(field string, oldVal, newVal int) {
	if oldVal != newVal {
		c.changes = append(c.changes, FieldChange{Field: field, Old: strconv.Itoa(oldVal), New: strconv.Itoa(newVal)})
	}
}

func (c *ChangeSet) IntPtr(field string, oldVal, newVal *int) {
	if intPtrEqual(oldVal, newVal) {
		return
	}
	c.changes = append(c.changes, FieldChange{Field: field, Old: intPtrString(oldVal), New: intPtrString(newVal)})
}

// Date compares two nullable dates by calendar day, ignoring time of day.
func (c *ChangeSet) Date(field string, oldVal, newVal *time.Time) {
	if datePtrEqual(oldVal, newVal) {
		return
	}
	c.changes = append(c.changes, FieldChange{Field: field, Old: datePtrString(oldVal), New: datePtrString(newVal)})
}

func (c *ChangeSet) Status(field string, oldVal, newVal ActivityStatus) {
	c.Str(field, string(oldVal), string(newVal))
}

func (c *ChangeSet) Relationship(field string, oldVal, newVal Relationship) {
	c.Str(field, string(oldVal), string(newVal))
}

// Changes returns the accumulated field changes in comparison order.
func (c *ChangeSet) Changes() []FieldChange {
	return c.changes
}

// Empty reports whether no compared field differed.
func (c *ChangeSet) Empty() bool {
	return len(c.changes) == 0
}

func intPtrEqual(a, b *int) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

func intPtrString(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func datePtrEqual(a, b *time.Time) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func datePtrString(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
