// Schema for the SQLite task store.

package sqlite

// Schema DDL. Columns other than id and position are nullable so that a
// missing field loads as absent and gets its default on decode.
const (
	createTasks = `CREATE TABLE IF NOT EXISTS tasks (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT,
    description TEXT,
    category TEXT,
    priority TEXT,
    due_date TEXT,
    completed INTEGER,
    created_at TEXT,
    completed_at TEXT
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value INTEGER NOT NULL
);`
)

// Index DDL.
const (
	idxTasksPosition = `CREATE INDEX IF NOT EXISTS idx_tasks_position ON tasks(position);`
)

// schemaDDL lists all statements run before a save, in dependency order.
var schemaDDL = []string{
	createTasks,
	createMeta,
	idxTasksPosition,
}

const metaKeyNextID = "next_id"

const (
	sqlHasTasksTable = `SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'tasks'`
	sqlSelectTasks   = `SELECT id, title, description, category, priority, due_date, completed, created_at, completed_at
FROM tasks ORDER BY position`
	sqlSelectNextID = `SELECT value FROM meta WHERE key = ?`
	sqlDeleteTasks  = `DELETE FROM tasks`
	sqlInsertTask   = `INSERT INTO tasks (id, position, title, description, category, priority, due_date, completed, created_at, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	sqlUpsertMeta = `INSERT INTO meta (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`
)
