// Package sqlite stores the task document in a SQLite database file.
// Every save rewrites the tasks table inside one transaction, so readers see
// either the previous or the new document and never a mix of the two.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/todo/pkg/types"
)

// Backend implements types.Backend on top of a SQLite database file.
type Backend struct {
	path string
	lock *flock.Flock
}

var _ types.Backend = (*Backend)(nil)

// New returns a Backend for the database at path. The database is opened
// per operation and closed before the call returns.
func New(path string) *Backend {
	return &Backend{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Location returns the database file path.
func (b *Backend) Location() string {
	return b.path
}

// Load reads every task row and the next_id counter. A missing or empty
// database, or one without a tasks table, yields types.ErrNoData.
func (b *Backend) Load() (types.Document, error) {
	info, err := os.Stat(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Document{}, types.ErrNoData
		}
		return types.Document{}, fmt.Errorf("stat %s: %w", b.path, err)
	}
	if info.Size() == 0 {
		return types.Document{}, types.ErrNoData
	}

	if err := b.lock.RLock(); err != nil {
		return types.Document{}, fmt.Errorf("locking %s: %w", b.path, err)
	}
	defer b.lock.Unlock()

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return types.Document{}, fmt.Errorf("opening %s: %w", b.path, err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(sqlHasTasksTable).Scan(&n); err != nil {
		return types.Document{}, fmt.Errorf("inspecting schema: %w", err)
	}
	if n == 0 {
		return types.Document{}, types.ErrNoData
	}

	records, err := loadRecords(db)
	if err != nil {
		return types.Document{}, err
	}

	doc := types.Document{Tasks: records}
	err = db.QueryRow(sqlSelectNextID, metaKeyNextID).Scan(&doc.NextID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return types.Document{}, fmt.Errorf("reading next_id: %w", err)
	}
	return doc, nil
}

// Save replaces all task rows and the next_id counter in one transaction.
func (b *Backend) Save(doc types.Document) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := b.lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", b.path, err)
	}
	defer b.lock.Unlock()

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", b.path, err)
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning save transaction: %w", err)
	}
	defer tx.Rollback()

	for _, ddl := range schemaDDL {
		if _, err := tx.Exec(ddl); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if _, err := tx.Exec(sqlDeleteTasks); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}

	stmt, err := tx.Prepare(sqlInsertTask)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range doc.Tasks {
		var completed any
		if r.Completed != nil {
			completed = *r.Completed
		}
		_, err := stmt.Exec(r.ID, i,
			nullable(r.Title), nullable(r.Description), nullable(r.Category),
			nullable(r.Priority), nullable(r.DueDate), completed,
			nullable(r.CreatedAt), nullable(r.CompletedAt))
		if err != nil {
			return fmt.Errorf("inserting task %d: %w", r.ID, err)
		}
	}

	if _, err := tx.Exec(sqlUpsertMeta, metaKeyNextID, doc.NextID); err != nil {
		return fmt.Errorf("writing next_id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save transaction: %w", err)
	}
	return nil
}

// Quarantine renames the database file to a timestamped .corrupt sibling.
func (b *Backend) Quarantine() (string, error) {
	dest := types.QuarantinePath(b.path, time.Now())
	if err := os.Rename(b.path, dest); err != nil {
		return "", fmt.Errorf("quarantining %s: %w", b.path, err)
	}
	// A leftover rollback journal belongs to the moved database.
	_ = os.Rename(b.path+"-journal", dest+"-journal")
	return dest, nil
}

// Backup copies the database file to a timestamped .corrupt sibling. The
// original stays where it is.
func (b *Backend) Backup() (string, error) {
	if err := b.lock.RLock(); err != nil {
		return "", fmt.Errorf("locking %s: %w", b.path, err)
	}
	defer b.lock.Unlock()

	src, err := os.Open(b.path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", b.path, err)
	}
	defer src.Close()

	dest := types.QuarantinePath(b.path, time.Now())
	dst, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", dest, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dest)
		return "", fmt.Errorf("copying %s: %w", b.path, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("closing %s: %w", dest, err)
	}
	return dest, nil
}

// loadRecords scans all task rows in document order.
func loadRecords(db *sql.DB) ([]types.Record, error) {
	rows, err := db.Query(sqlSelectTasks)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var (
			r                                      types.Record
			title, description, category, priority sql.NullString
			dueDate, createdAt, completedAt        sql.NullString
			completed                              sql.NullBool
		)
		if err := rows.Scan(&r.ID, &title, &description, &category, &priority,
			&dueDate, &completed, &createdAt, &completedAt); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		r.Title = stringPtr(title)
		r.Description = stringPtr(description)
		r.Category = stringPtr(category)
		r.Priority = stringPtr(priority)
		r.DueDate = stringPtr(dueDate)
		r.CreatedAt = stringPtr(createdAt)
		r.CompletedAt = stringPtr(completedAt)
		if completed.Valid {
			v := completed.Bool
			r.Completed = &v
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return records, nil
}

// nullable converts an optional string to a value database/sql binds as
// NULL when absent.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
