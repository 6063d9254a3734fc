package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations creates the schema. The partial unique index on
// revisions makes a second latest record per (project, module) a
// constraint failure rather than something the read side has to cope
// with.
func (db *DB) RunMigrations() error {
	migration := `
-- Projects table
CREATE TABLE projects (
    unique_id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    owner TEXT,
    estimator TEXT,
    program TEXT,
    client TEXT,
    epic_id TEXT,
    priority TEXT,
    status TEXT NOT NULL CHECK(status IN ('New', 'Active', 'On Hold', 'Closed')),
    notes TEXT,
    estimate_needed_by TIMESTAMP,
    target_delivery_date TIMESTAMP,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

-- Versioned Scope/Estimate/VE records
CREATE TABLE revisions (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    module TEXT NOT NULL CHECK(module IN ('Scope', 'Estimate', 'VE')),
    version INTEGER NOT NULL CHECK(version >= 1),
    status TEXT NOT NULL,
    is_latest INTEGER NOT NULL DEFAULT 0,
    scope_title TEXT,
    scope_type TEXT,
    artifact_link TEXT,
    estimate_type TEXT,
    estimated_ftp REAL,
    estimated_dollar_value REAL,
    currency TEXT,
    ve_tool_reference TEXT,
    ve_ftp REAL,
    ve_dollar_value REAL,
    comments TEXT,
    submitted_date TIMESTAMP,
    approved_date TIMESTAMP,
    created_by TEXT,
    updated_by TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(unique_id),
    UNIQUE (project_id, module, version)
);
CREATE INDEX idx_revisions_project ON revisions(project_id);
CREATE INDEX idx_revisions_module ON revisions(module);
CREATE UNIQUE INDEX idx_revisions_single_latest ON revisions(project_id, module) WHERE is_latest = 1;

-- Status history ledger (append-only)
CREATE TABLE status_history (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL,
    module TEXT NOT NULL CHECK(module IN ('Project', 'Scope', 'Estimate', 'VE')),
    record_id TEXT,
    from_status TEXT NOT NULL,
    to_status TEXT NOT NULL,
    reason TEXT NOT NULL,
    changed_by TEXT,
    changed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (project_id) REFERENCES projects(unique_id)
);
CREATE INDEX idx_history_project ON status_history(project_id);
CREATE INDEX idx_history_changed_at ON status_history(changed_at);

-- User directory
CREATE TABLE users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT,
    role TEXT NOT NULL
);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
