package types

import (
	"fmt"
	"time"
)

// TimeLayout is the timestamp format written to records.
const TimeLayout = time.RFC3339Nano

// legacyTimeLayout is the zone-less ISO form written by older data files.
// Such timestamps are read as local time.
const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

// Record is the flat, field-named form of a Task as stored in the backing
// document. Pointer fields distinguish an absent key from a zero value so
// that decoding can apply per-field defaults.
type Record struct {
	ID          int     `json:"id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
	Completed   *bool   `json:"completed"`
	CreatedAt   *string `json:"created_at"`
	CompletedAt *string `json:"completed_at"`
}

// Document is the complete persisted state of a store.
type Document struct {
	Tasks  []Record `json:"tasks"`
	NextID int      `json:"next_id"`
}

// Record returns the serialized form of t with all nine fields. DueDate and
// CompletedAt are nil when unset.
func (t Task) Record() Record {
	r := Record{
		ID:          t.ID,
		Title:       ptr(t.Title),
		Description: ptr(t.Description),
		Category:    ptr(t.Category),
		Priority:    ptr(string(t.Priority)),
		Completed:   ptr(t.Completed),
		CreatedAt:   ptr(formatTime(t.CreatedAt)),
	}
	if t.DueDate != "" {
		r.DueDate = ptr(t.DueDate)
	}
	if t.CompletedAt != nil {
		r.CompletedAt = ptr(formatTime(*t.CompletedAt))
	}
	return r
}

// TaskFromRecord rebuilds a Task from its record. Missing optional fields
// take their defaults: description "", category DefaultCategory, priority
// Medium, no due date, not completed, created now. A missing or blank title,
// or an unparseable timestamp, yields an error wrapping ErrMalformedRecord.
//
// The completion invariant is restored on the way in: CompletedAt is dropped
// for an incomplete task and defaults to CreatedAt for a completed one.
func TaskFromRecord(r Record) (Task, error) {
	if r.Title == nil || *r.Title == "" {
		return Task{}, fmt.Errorf("%w: task %d has no title", ErrMalformedRecord, r.ID)
	}

	t := Task{
		ID:       r.ID,
		Title:    *r.Title,
		Category: DefaultCategory,
		Priority: PriorityMedium,
	}
	if r.Description != nil {
		t.Description = *r.Description
	}
	if r.Category != nil && *r.Category != "" {
		t.Category = *r.Category
	}
	if r.Priority != nil {
		t.Priority = ParsePriority(*r.Priority)
	}
	if r.DueDate != nil {
		t.DueDate = *r.DueDate
	}
	if r.Completed != nil {
		t.Completed = *r.Completed
	}

	if r.CreatedAt != nil {
		ts, err := parseTime(*r.CreatedAt)
		if err != nil {
			return Task{}, fmt.Errorf("%w: task %d created_at: %v", ErrMalformedRecord, r.ID, err)
		}
		t.CreatedAt = ts
	} else {
		t.CreatedAt = now()
	}

	if t.Completed {
		completedAt := t.CreatedAt
		if r.CompletedAt != nil {
			ts, err := parseTime(*r.CompletedAt)
			if err != nil {
				return Task{}, fmt.Errorf("%w: task %d completed_at: %v", ErrMalformedRecord, r.ID, err)
			}
			completedAt = ts
		}
		t.CompletedAt = &completedAt
	}

	return t, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func parseTime(s string) (time.Time, error) {
	ts, err := time.Parse(TimeLayout, s)
	if err == nil {
		return ts, nil
	}
	if legacy, lerr := time.ParseInLocation(legacyTimeLayout, s, time.Local); lerr == nil {
		return legacy.UTC(), nil
	}
	return time.Time{}, err
}

func ptr[T any](v T) *T {
	return &v
}
