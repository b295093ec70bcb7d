package types

import (
	"fmt"
	"time"
)

// quarantineTimeLayout stamps moved-aside copies down to the nanosecond.
const quarantineTimeLayout = "20060102T150405.000000000"

// Backend persists a store's Document to a backing location. Implementations
// must replace the prior content as a whole so that a concurrent reader sees
// either the old or the new document, never a partial one.
type Backend interface {
	// Load reads the stored document. Returns ErrNoData when the location
	// does not exist or holds nothing yet. Any other error means the stored
	// data could not be read or decoded.
	Load() (Document, error)

	// Save atomically replaces the stored document with doc.
	Save(doc Document) error

	// Quarantine moves unreadable data aside so a later Save cannot
	// overwrite it. Returns the path the data was moved to.
	Quarantine() (string, error)

	// Backup copies the stored data aside and leaves the original in place.
	// Returns the path of the copy.
	Backup() (string, error)

	// Location identifies the backing target, typically a file path.
	Location() string
}

// QuarantinePath returns the sibling path that data at location is moved or
// copied to at time at.
func QuarantinePath(location string, at time.Time) string {
	return fmt.Sprintf("%s.corrupt-%s", location, at.UTC().Format(quarantineTimeLayout))
}
