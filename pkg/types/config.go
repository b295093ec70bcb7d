package types

import "path/filepath"

// Config selects the storage backend and where it keeps its data.
type Config struct {
	Backend  string `json:"backend" yaml:"backend"`
	DataDir  string `json:"data_dir" yaml:"data_dir"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Supported backend names.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Data file names per backend.
const (
	JSONFileName   = "tasks.json"
	SQLiteFileName = "tasks.db"
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]string{
	BackendJSON:   JSONFileName,
	BackendSQLite: SQLiteFileName,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if _, ok := knownBackends[c.Backend]; !ok {
		return ErrBackendUnknown
	}
	return nil
}

// DataFile returns the backing file path for the configured backend. An
// empty DataDir means the current directory.
func (c Config) DataFile() string {
	dir := c.DataDir
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, knownBackends[c.Backend])
}
