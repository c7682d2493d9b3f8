// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/KTee1986/mahjong-tracker/internal/models"
	"github.com/KTee1986/mahjong-tracker/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

const recordColumns = `id, created_at,
	east_players, east_score, south_players, south_score,
	west_players, west_score, north_players, north_score`

// scanRecord reads one games row into a GameRecord via the shared row
// contract, so the column order lives in exactly one place.
func scanRecord(scan func(dest ...any) error) (*models.GameRecord, error) {
	cells := make([]string, models.RowWidth)
	dest := make([]any, models.RowWidth)
	for i := range cells {
		dest[i] = &cells[i]
	}
	if err := scan(dest...); err != nil {
		return nil, err
	}
	return models.RecordFromRow(cells)
}

// ListRecords returns every game record in insertion order, oldest first.
func (s *SQLiteStore) ListRecords(ctx context.Context) ([]models.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM games ORDER BY seq",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var records []models.GameRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate games: %w", err)
	}
	return records, nil
}

// AppendRecord persists a new record at the end of the log.
func (s *SQLiteStore) AppendRecord(ctx context.Context, rec *models.GameRecord) (string, error) {
	cells := rec.Row()
	args := make([]any, 0, models.RowWidth)
	for _, cell := range cells {
		args = append(args, cell)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (`+recordColumns+`, seq)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
		         (SELECT COALESCE(MAX(seq), 0) + 1 FROM games))`,
		args...,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert game: %w", err)
	}
	return rec.ID, nil
}

// UpdateRecord replaces the stored row for one game id, keeping its
// position in the log.
func (s *SQLiteStore) UpdateRecord(ctx context.Context, gameID string, rec *models.GameRecord) error {
	cells := rec.Row()
	res, err := s.db.ExecContext(ctx,
		`UPDATE games SET created_at = ?,
		    east_players = ?, east_score = ?, south_players = ?, south_score = ?,
		    west_players = ?, west_score = ?, north_players = ?, north_score = ?
		 WHERE id = ?`,
		cells[1], cells[2], cells[3], cells[4], cells[5],
		cells[6], cells[7], cells[8], cells[9], gameID,
	)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	return requireOneRow(res)
}

// DeleteRecord removes one game from the log.
func (s *SQLiteStore) DeleteRecord(ctx context.Context, gameID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM games WHERE id = ?", gameID)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	return requireOneRow(res)
}

// requireOneRow maps zero affected rows to storage.ErrNotFound. The id
// column is the primary key, so more than one row cannot match.
func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
