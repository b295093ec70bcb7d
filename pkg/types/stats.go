package types

// CategoryStats counts tasks within one category.
type CategoryStats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// CompletionRate returns the completed share as a percentage, or 0 for an
// empty category.
func (c CategoryStats) CompletionRate() float64 {
	return rate(c.Completed, c.Total)
}

// Stats aggregates a store's tasks. Pending is always Total - Completed.
type Stats struct {
	Total      int                      `json:"total"`
	Completed  int                      `json:"completed"`
	Pending    int                      `json:"pending"`
	Categories map[string]CategoryStats `json:"categories"`
}

// CompletionRate returns the completed share of all tasks as a percentage,
// or 0 when there are no tasks.
func (s Stats) CompletionRate() float64 {
	return rate(s.Completed, s.Total)
}

func rate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
