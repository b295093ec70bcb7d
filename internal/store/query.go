package store

import (
	"sort"
	"strings"

	"github.com/mesh-intelligence/todo/pkg/types"
)

// ListOptions filters ListTasks. The zero value lists every task.
type ListOptions struct {
	HideCompleted bool   // drop completed tasks
	Category      string // keep only this category, compared case-insensitively; "" keeps all
}

// ListTasks returns a snapshot of the matching tasks ordered by completion
// (open first), then priority (High, Medium, Low; unknown as Medium), then
// creation time. Tasks created at the same instant keep insertion order.
func (s *Store) ListTasks(opts ListOptions) []types.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if opts.HideCompleted && t.Completed {
			continue
		}
		if opts.Category != "" && !strings.EqualFold(t.Category, opts.Category) {
			continue
		}
		out = append(out, cloneTask(t))
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Completed != b.Completed {
			return !a.Completed
		}
		if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
			return ra < rb
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out
}

// Categories returns the distinct categories in use, sorted ascending.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, t := range s.tasks {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Stats computes totals over the current tasks.
func (s *Store) Stats() types.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := types.Stats{
		Total:      len(s.tasks),
		Categories: make(map[string]types.CategoryStats),
	}
	for _, t := range s.tasks {
		cs := st.Categories[t.Category]
		cs.Total++
		if t.Completed {
			st.Completed++
			cs.Completed++
		}
		st.Categories[t.Category] = cs
	}
	st.Pending = st.Total - st.Completed
	return st
}
