package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/todo/pkg/types"
)

func ids(tasks []types.Task) []int {
	out := make([]int, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestListTasksPriorityOrder(t *testing.T) {
	s := New(&memBackend{})
	add(t, s, types.TaskInput{Title: "low", Priority: "Low"})
	add(t, s, types.TaskInput{Title: "high", Priority: "High"})
	add(t, s, types.TaskInput{Title: "medium", Priority: "Medium"})

	got := s.ListTasks(ListOptions{})

	require.Len(t, got, 3)
	assert.Equal(t, types.PriorityHigh, got[0].Priority)
	assert.Equal(t, types.PriorityMedium, got[1].Priority)
	assert.Equal(t, types.PriorityLow, got[2].Priority)
}

func TestListTasksHideCompleted(t *testing.T) {
	s := New(&memBackend{})
	add(t, s, types.TaskInput{Title: "Task 1"})
	add(t, s, types.TaskInput{Title: "Task 2"})
	_, err := s.MarkComplete(1)
	require.NoError(t, err)

	assert.Equal(t, []int{2}, ids(s.ListTasks(ListOptions{HideCompleted: true})))
	assert.Equal(t, []int{2, 1}, ids(s.ListTasks(ListOptions{})), "completed tasks sort last")
}

func TestListTasksCompletedNeverFirst(t *testing.T) {
	s := New(&memBackend{})
	for _, p := range []string{"High", "Low", "Medium", "High", "Low", "Medium"} {
		add(t, s, types.TaskInput{Title: p, Priority: p})
	}
	for _, id := range []int{1, 4, 5} {
		_, err := s.MarkComplete(id)
		require.NoError(t, err)
	}

	got := s.ListTasks(ListOptions{})
	require.Len(t, got, 6)
	for i := 1; i < len(got); i++ {
		prev, cur := got[i-1], got[i]
		assert.False(t, prev.Completed && !cur.Completed, "completed task %d listed before open task %d", prev.ID, cur.ID)
		if prev.Completed == cur.Completed {
			assert.LessOrEqual(t, prev.Priority.Rank(), cur.Priority.Rank())
		}
	}
}

func TestListTasksCreationTieBreak(t *testing.T) {
	title := "t"
	priority := "High"
	early, late := "2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z"
	b := &memBackend{doc: &types.Document{
		Tasks: []types.Record{
			{ID: 1, Title: &title, Priority: &priority, CreatedAt: &late},
			{ID: 2, Title: &title, Priority: &priority, CreatedAt: &early},
			{ID: 3, Title: &title, CreatedAt: &early},
		},
		NextID: 4,
	}}

	s := New(b)

	assert.Equal(t, []int{2, 1, 3}, ids(s.ListTasks(ListOptions{})))
}

func TestListTasksUnknownPriorityRanksAsMedium(t *testing.T) {
	title := "t"
	urgent := "Urgent"
	b := &memBackend{doc: &types.Document{
		Tasks: []types.Record{
			{ID: 1, Title: &title, Priority: &urgent, CreatedAt: ptr("2026-01-03T00:00:00Z")},
			{ID: 2, Title: &title, Priority: ptr("Low"), CreatedAt: ptr("2026-01-01T00:00:00Z")},
			{ID: 3, Title: &title, Priority: ptr("Medium"), CreatedAt: ptr("2026-01-02T00:00:00Z")},
		},
		NextID: 4,
	}}

	s := New(b)

	assert.Equal(t, []int{3, 1, 2}, ids(s.ListTasks(ListOptions{})))
}

func TestListTasksCategoryFilter(t *testing.T) {
	s := New(&memBackend{})
	add(t, s, types.TaskInput{Title: "Task 1", Category: "Work", Priority: "High"})
	add(t, s, types.TaskInput{Title: "Task 2", Category: "Personal", Priority: "Low"})
	add(t, s, types.TaskInput{Title: "Task 3", Category: "work"})

	got := s.ListTasks(ListOptions{Category: "WORK"})
	assert.Equal(t, []int{1, 3}, ids(got))

	assert.Empty(t, s.ListTasks(ListOptions{Category: "Errands"}))
}

func TestListTasksFiltersCombine(t *testing.T) {
	s := New(&memBackend{})
	add(t, s, types.TaskInput{Title: "Task 1", Category: "Work"})
	add(t, s, types.TaskInput{Title: "Task 2", Category: "Work"})
	add(t, s, types.TaskInput{Title: "Task 3", Category: "Home"})
	_, err := s.MarkComplete(1)
	require.NoError(t, err)

	got := s.ListTasks(ListOptions{HideCompleted: true, Category: "work"})
	assert.Equal(t, []int{2}, ids(got))
}

func TestListTasksIsSnapshot(t *testing.T) {
	s := New(&memBackend{})
	add(t, s, types.TaskInput{Title: "Task 1"})
	add(t, s, types.TaskInput{Title: "Task 2"})

	view := s.ListTasks(ListOptions{})

	_, err := s.MarkComplete(1)
	require.NoError(t, err)
	_, err = s.RemoveTask(2)
	require.NoError(t, err)

	require.Len(t, view, 2)
	assert.False(t, view[0].Completed)
	assert.Nil(t, view[0].CompletedAt)
	assert.Equal(t, 2, view[1].ID)
}

func TestCategories(t *testing.T) {
	s := New(&memBackend{})
	assert.Empty(t, s.Categories())

	add(t, s, types.TaskInput{Title: "a", Category: "Work"})
	add(t, s, types.TaskInput{Title: "b", Category: "Errands"})
	add(t, s, types.TaskInput{Title: "c"})
	add(t, s, types.TaskInput{Title: "d", Category: "Work"})

	assert.Equal(t, []string{"Errands", "General", "Work"}, s.Categories())
}

func TestStats(t *testing.T) {
	s := New(&memBackend{})
	add(t, s, types.TaskInput{Title: "Task 1", Category: "Work"})
	add(t, s, types.TaskInput{Title: "Task 2", Category: "Personal"})
	add(t, s, types.TaskInput{Title: "Task 3", Category: "Work"})
	_, err := s.MarkComplete(1)
	require.NoError(t, err)

	st := s.Stats()
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.Completed)
	assert.Equal(t, 2, st.Pending)
	assert.Equal(t, st.Total, st.Completed+st.Pending)
	assert.Equal(t, map[string]types.CategoryStats{
		"Work":     {Total: 2, Completed: 1},
		"Personal": {Total: 1, Completed: 0},
	}, st.Categories)

	_, err = s.RemoveTask(1)
	require.NoError(t, err)
	st = s.Stats()
	assert.Equal(t, 2, st.Total, "stats are recomputed on every call")
	assert.Equal(t, 0, st.Completed)
	assert.Equal(t, st.Total, st.Completed+st.Pending)
}

func ptr(s string) *string { return &s }
