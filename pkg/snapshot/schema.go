package snapshot

// SchemaDDL defines the SQLite schema for session snapshots.
// Tables: sessions, cells, outputs.
// Execute against a SQLite database with: db.Exec(SchemaDDL)
const SchemaDDL = `
-- One row per captured session
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Cells at capture time, deleted ones included (the id space is stable)
CREATE TABLE IF NOT EXISTS cells (
    session_id TEXT NOT NULL REFERENCES sessions(id),
    cell_id INTEGER NOT NULL,
    kind TEXT NOT NULL,
    code TEXT NOT NULL,
    has_run INTEGER NOT NULL DEFAULT 0,
    deleted INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (session_id, cell_id)
);

-- Full output log at capture time; seq preserves global emission order
CREATE TABLE IF NOT EXISTS outputs (
    session_id TEXT NOT NULL REFERENCES sessions(id),
    seq INTEGER NOT NULL,
    cell_id INTEGER NOT NULL,
    stream TEXT NOT NULL,
    text TEXT NOT NULL,
    visible INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (session_id, seq)
);
`
