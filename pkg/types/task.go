package types

import (
	"encoding/json"
	"strings"
	"time"
)

// DefaultCategory is assigned to tasks created without a category.
const DefaultCategory = "General"

// now is the clock used for task timestamps. Times are kept in UTC with the
// monotonic reading stripped so they survive a serialize/deserialize cycle
// unchanged. Tests may override it.
var now = func() time.Time {
	return time.Now().UTC().Round(0)
}

// TaskInput carries the caller-supplied fields for a new task.
type TaskInput struct {
	Title       string
	Description string
	Category    string // "" means DefaultCategory
	Priority    string // parsed with ParsePriority
	DueDate     string // opaque; "" means no due date
}

// Task is a single to-do item. ID is assigned by the store that owns the
// task; a Task built by NewTask has ID 0 until then.
//
// CompletedAt is non-nil if and only if Completed is true. CreatedAt is set
// once by NewTask and never changes.
type Task struct {
	ID          int
	Title       string
	Description string
	Category    string
	Priority    Priority
	DueDate     string
	Completed   bool
	CreatedAt   time.Time
	CompletedAt *time.Time
}

// NewTask validates in and returns an incomplete task stamped with the
// current time. Returns ErrInvalidTitle if the title is blank.
func NewTask(in TaskInput) (*Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, ErrInvalidTitle
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}
	return &Task{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Priority:    ParsePriority(in.Priority),
		DueDate:     strings.TrimSpace(in.DueDate),
		CreatedAt:   now(),
	}, nil
}

// MarkComplete marks the task done and stamps CompletedAt. Calling it on a
// completed task refreshes CompletedAt.
func (t *Task) MarkComplete() {
	ts := now()
	t.Completed = true
	t.CompletedAt = &ts
}

// MarkIncomplete reopens the task and clears CompletedAt. Idempotent.
func (t *Task) MarkIncomplete() {
	t.Completed = false
	t.CompletedAt = nil
}

// HasDueDate reports whether a due date is set.
func (t Task) HasDueDate() bool {
	return t.DueDate != ""
}

// MarshalJSON encodes the task in its record form.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Record())
}

// UnmarshalJSON decodes a record with the same defaults as TaskFromRecord.
func (t *Task) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	decoded, err := TaskFromRecord(r)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}
