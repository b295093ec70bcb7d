// Package store implements the task store: an ordered, id-keyed collection
// of tasks that persists its whole state to a types.Backend after every
// successful mutation.
package store

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/todo/internal/jsonfile"
	"github.com/mesh-intelligence/todo/internal/sqlite"
	"github.com/mesh-intelligence/todo/pkg/types"
)

// Store owns a list of tasks and the counter that issues their ids.
//
// nextID is always greater than every id the store has ever issued or
// loaded, so ids are never reused after a removal.
type Store struct {
	mu      sync.Mutex
	backend types.Backend
	logger  *slog.Logger
	tasks   []types.Task
	nextID  int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for load and save diagnostics. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store backed by b and loads any prior state from it. New
// never fails: a missing location starts empty, and unreadable or corrupt
// data is moved aside and logged before starting empty.
func New(b types.Backend, opts ...Option) *Store {
	s := &Store{
		backend: b,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		nextID:  1,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// Open validates cfg and creates a store on the backend it names.
func Open(cfg types.Config, opts ...Option) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	var b types.Backend
	switch cfg.Backend {
	case types.BackendSQLite:
		b = sqlite.New(cfg.DataFile())
	default:
		b = jsonfile.New(cfg.DataFile())
	}
	return New(b, opts...), nil
}

// Location returns the backing location this store persists to.
func (s *Store) Location() string {
	return s.backend.Location()
}

// NextID returns the id the next added task will receive.
func (s *Store) NextID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// Len returns the number of tasks in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// AddTask validates in, assigns the next id, appends the task and persists.
// Returns the validation error from types.NewTask unchanged, or a
// *types.PersistenceError if the save fails, in which case the store is left
// as it was.
func (s *Store) AddTask(in types.TaskInput) (types.Task, error) {
	task, err := types.NewTask(in)
	if err != nil {
		return types.Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.snapshot()
	task.ID = s.nextID
	s.nextID++
	s.tasks = append(s.tasks, *task)

	if err := s.persist("add", prev); err != nil {
		return types.Task{}, err
	}
	return *task, nil
}

// RemoveTask deletes the task with the given id. It reports whether a task
// was found; a missing id is not an error and does not write.
func (s *Store) RemoveTask(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	prev := s.snapshot()
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	if err := s.persist("remove", prev); err != nil {
		return false, err
	}
	return true, nil
}

// GetTask returns a copy of the task with the given id.
func (s *Store) GetTask(id int) (types.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return types.Task{}, false
	}
	return cloneTask(s.tasks[i]), true
}

// MarkComplete marks the task done and persists, even if it already was.
// It reports whether the task exists.
func (s *Store) MarkComplete(id int) (bool, error) {
	return s.update("complete", id, (*types.Task).MarkComplete)
}

// MarkIncomplete reopens the task and persists, even if it already was
// open. It reports whether the task exists.
func (s *Store) MarkIncomplete(id int) (bool, error) {
	return s.update("reopen", id, (*types.Task).MarkIncomplete)
}

func (s *Store) update(op string, id int, apply func(*types.Task)) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	prev := s.snapshot()
	apply(&s.tasks[i])

	if err := s.persist(op, prev); err != nil {
		return false, err
	}
	return true, nil
}

// Save writes the current state to the backend without changing it. It is
// used to create the backing location on first use.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist("save", s.snapshot())
}

// indexOf returns the slice index of id, or -1. The caller must hold s.mu.
func (s *Store) indexOf(id int) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// state is a restorable copy of the store's mutable fields.
type state struct {
	tasks  []types.Task
	nextID int
}

// snapshot copies the current state. The caller must hold s.mu.
func (s *Store) snapshot() state {
	return state{tasks: cloneTasks(s.tasks), nextID: s.nextID}
}

// persist writes the current state. On failure it restores prev so memory
// keeps matching what is on disk. The caller must hold s.mu.
func (s *Store) persist(op string, prev state) error {
	doc := types.Document{
		Tasks:  make([]types.Record, len(s.tasks)),
		NextID: s.nextID,
	}
	for i, t := range s.tasks {
		doc.Tasks[i] = t.Record()
	}

	if err := s.backend.Save(doc); err != nil {
		s.tasks, s.nextID = prev.tasks, prev.nextID
		s.logger.Error("save failed", "op", op, "location", s.backend.Location(), "err", err)
		return &types.PersistenceError{Op: op, Location: s.backend.Location(), Err: err}
	}
	s.logger.Debug("saved tasks", "op", op, "location", s.backend.Location(),
		"tasks", len(doc.Tasks), "next_id", doc.NextID)
	return nil
}

// load replaces the in-memory state with the backend's document. Failures
// never propagate; see New.
//
// A document that cannot be read at all is moved aside. When only some
// records are malformed, the file is copied aside and the repaired document
// is written back, so later opens see the same tasks and counter.
func (s *Store) load() {
	loc := s.backend.Location()

	doc, err := s.backend.Load()
	if err != nil {
		if !errors.Is(err, types.ErrNoData) {
			s.logger.Warn("unreadable task data, starting empty", "location", loc, "err", err)
			s.quarantine()
		}
		return
	}

	tasks, skipped := decodeTasks(doc.Tasks)
	for _, r := range doc.Tasks {
		if r.Priority != nil && !types.Priority(*r.Priority).Valid() {
			s.logger.Debug("normalized task priority", "location", loc, "id", r.ID,
				"stored", *r.Priority, "priority", types.ParsePriority(*r.Priority))
		}
	}

	s.tasks = tasks
	s.nextID = repairNextID(doc.NextID, tasks, skipped)
	s.logger.Debug("loaded tasks", "location", loc, "tasks", len(tasks), "next_id", s.nextID)

	if len(skipped) > 0 {
		s.repair(skipped)
	}
}

// repair backs up the stored data, then saves the records that decoded.
// If the backup fails the stored data is left untouched.
func (s *Store) repair(skipped []skippedRecord) {
	loc := s.backend.Location()
	ids := make([]int, len(skipped))
	for i, sr := range skipped {
		ids[i] = sr.id
		s.logger.Warn("skipping task record", "location", loc, "id", sr.id, "err", sr.err)
	}

	dest, err := s.backend.Backup()
	if err != nil {
		s.logger.Warn("could not back up task data, leaving it in place", "location", loc, "err", err)
		return
	}
	s.logger.Warn("skipped malformed task records", "location", loc, "ids", ids, "saved_as", dest)

	if err := s.persist("repair", s.snapshot()); err != nil {
		s.logger.Warn("could not write repaired task data", "location", loc, "err", err)
	}
}

// quarantine moves the current data aside so a later save cannot overwrite
// records this store failed to read.
func (s *Store) quarantine() {
	dest, err := s.backend.Quarantine()
	if err != nil {
		s.logger.Warn("could not move unreadable data aside", "location", s.backend.Location(), "err", err)
		return
	}
	s.logger.Warn("moved unreadable data aside", "location", s.backend.Location(), "saved_as", dest)
}

// skippedRecord is a stored record that did not load.
type skippedRecord struct {
	id  int
	err error
}

// decodeTasks converts records to tasks in document order. Records that
// fail to decode, have a non-positive id, or repeat an earlier id are
// skipped and reported.
func decodeTasks(records []types.Record) ([]types.Task, []skippedRecord) {
	var (
		tasks   = make([]types.Task, 0, len(records))
		skipped []skippedRecord
		seen    = make(map[int]bool, len(records))
	)
	for _, r := range records {
		if r.ID <= 0 {
			skipped = append(skipped, skippedRecord{r.ID, fmt.Errorf("%w: invalid id %d", types.ErrMalformedRecord, r.ID)})
			continue
		}
		if seen[r.ID] {
			skipped = append(skipped, skippedRecord{r.ID, fmt.Errorf("%w: duplicate id %d", types.ErrMalformedRecord, r.ID)})
			continue
		}
		t, err := types.TaskFromRecord(r)
		if err != nil {
			skipped = append(skipped, skippedRecord{r.ID, err})
			continue
		}
		seen[r.ID] = true
		tasks = append(tasks, t)
	}
	return tasks, skipped
}

// repairNextID returns stored unless it would reissue an id held by a
// loaded or skipped record.
func repairNextID(stored int, tasks []types.Task, skipped []skippedRecord) int {
	next := max(stored, 1)
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	for _, sr := range skipped {
		if sr.id >= next {
			next = sr.id + 1
		}
	}
	return next
}

func cloneTask(t types.Task) types.Task {
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		t.CompletedAt = &ts
	}
	return t
}

func cloneTasks(tasks []types.Task) []types.Task {
	out := make([]types.Task, len(tasks))
	for i, t := range tasks {
		out[i] = cloneTask(t)
	}
	return out
}
