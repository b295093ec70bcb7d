package types

import "strings"

// Priority is the urgency level of a task.
type Priority string

// Recognized priorities. Anything else sorts as PriorityMedium.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// priorityRank orders priorities for listing; lower ranks sort first.
var priorityRank = map[Priority]int{
	PriorityHigh:   0,
	PriorityMedium: 1,
	PriorityLow:    2,
}

// ParsePriority maps user input to a Priority. Matching is case-insensitive
// and surrounding whitespace is ignored. Unrecognized input, including the
// empty string, yields PriorityMedium rather than an error.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Rank returns the sort rank of p: High=0, Medium=1, Low=2. Unknown values
// rank as Medium.
func (p Priority) Rank() int {
	if r, ok := priorityRank[p]; ok {
		return r
	}
	return priorityRank[PriorityMedium]
}

// Valid reports whether p is one of the three recognized priorities.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

func (p Priority) String() string {
	return string(p)
}
