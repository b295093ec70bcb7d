// Package jsonfile stores the task document as a single JSON file.
// Writes use the temp-file, fsync, rename pattern so the file is always either
// the previous or the new complete document. An advisory lock file serializes
// readers and writers across processes.
package jsonfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/mesh-intelligence/todo/pkg/types"
)

// Backend implements types.Backend on top of one JSON file.
type Backend struct {
	path string
	lock *flock.Flock
}

var _ types.Backend = (*Backend)(nil)

// New returns a Backend for the file at path. Nothing is touched on disk
// until the first Load or Save.
func New(path string) *Backend {
	return &Backend{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Location returns the data file path.
func (b *Backend) Location() string {
	return b.path
}

// Load reads and decodes the document. A missing or blank file yields
// types.ErrNoData; anything that is not a JSON document object is returned
// as a decode error.
func (b *Backend) Load() (types.Document, error) {
	if _, err := os.Stat(b.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Document{}, types.ErrNoData
		}
		return types.Document{}, fmt.Errorf("stat %s: %w", b.path, err)
	}

	if err := b.lock.RLock(); err != nil {
		return types.Document{}, fmt.Errorf("locking %s: %w", b.path, err)
	}
	defer b.lock.Unlock()

	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return types.Document{}, types.ErrNoData
		}
		return types.Document{}, fmt.Errorf("reading %s: %w", b.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return types.Document{}, types.ErrNoData
	}

	var doc types.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.Document{}, fmt.Errorf("decoding %s: %w", b.path, err)
	}
	return doc, nil
}

// Save writes doc as indented JSON, replacing the file atomically.
func (b *Backend) Save(doc types.Document) error {
	if doc.Tasks == nil {
		doc.Tasks = []types.Record{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	if err := b.lock.Lock(); err != nil {
		return fmt.Errorf("locking %s: %w", b.path, err)
	}
	defer b.lock.Unlock()

	return writeAtomic(b.path, data)
}

// Quarantine renames the data file to a timestamped .corrupt sibling.
func (b *Backend) Quarantine() (string, error) {
	dest := types.QuarantinePath(b.path, time.Now())
	if err := os.Rename(b.path, dest); err != nil {
		return "", fmt.Errorf("quarantining %s: %w", b.path, err)
	}
	return dest, nil
}

// Backup copies the data file to a timestamped .corrupt sibling. The
// original stays where it is.
func (b *Backend) Backup() (string, error) {
	if err := b.lock.RLock(); err != nil {
		return "", fmt.Errorf("locking %s: %w", b.path, err)
	}
	defer b.lock.Unlock()

	data, err := os.ReadFile(b.path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", b.path, err)
	}
	dest := types.QuarantinePath(b.path, time.Now())
	if err := writeAtomic(dest, data); err != nil {
		return "", fmt.Errorf("backing up %s: %w", b.path, err)
	}
	return dest, nil
}

// writeAtomic writes data to path using the temp-file, fsync, rename
// pattern. The temp file lives in the same directory so the rename does not
// cross filesystems.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tasks-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
