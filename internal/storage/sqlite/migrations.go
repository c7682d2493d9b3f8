package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. The games table mirrors
// the versioned 10-column row contract one column per cell; seq preserves
// sheet row order for the standings replay.
const schema = `
CREATE TABLE IF NOT EXISTS games (
    id TEXT PRIMARY KEY,
    seq INTEGER,
    created_at TEXT NOT NULL,
    east_players TEXT NOT NULL DEFAULT '',
    east_score REAL NOT NULL DEFAULT 0,
    south_players TEXT NOT NULL DEFAULT '',
    south_score REAL NOT NULL DEFAULT 0,
    west_players TEXT NOT NULL DEFAULT '',
    west_score REAL NOT NULL DEFAULT 0,
    north_players TEXT NOT NULL DEFAULT '',
    north_score REAL NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_games_seq ON games(seq);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
