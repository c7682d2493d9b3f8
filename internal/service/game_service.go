// Package service holds the use-case layer between HTTP handlers and the
// store, the standings engine, and the ledger client.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KTee1986/mahjong-tracker/internal/models"
	"github.com/KTee1986/mahjong-tracker/internal/stats"
	"github.com/KTee1986/mahjong-tracker/internal/storage"
)

// GameService records, corrects and aggregates games.
type GameService struct {
	store storage.Store
}

// NewGameService creates a GameService with the given storage backend.
func NewGameService(store storage.Store) *GameService {
	return &GameService{store: store}
}

// Create validates and appends a new finalized game. The game id and
// timestamp are generated here; the zero-sum invariant is enforced now
// and never re-checked retroactively.
func (s *GameService) Create(ctx context.Context, seats [models.NumSeats]models.SeatEntry) (*models.GameRecord, error) {
	rec := &models.GameRecord{
		ID:        uuid.New().String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Seats:     seats,
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.store.AppendRecord(ctx, rec); err != nil {
		return nil, fmt.Errorf("append record: %w", err)
	}
	slog.Info("Game recorded", "game_id", rec.ID)
	return rec, nil
}

// List returns the full game log, oldest first.
func (s *GameService) List(ctx context.Context) ([]models.GameRecord, error) {
	return s.store.ListRecords(ctx)
}

// Update replaces one game's seats after re-validating the invariants.
// The original timestamp is preserved; a correction does not move the
// game in time.
func (s *GameService) Update(ctx context.Context, gameID, timestamp string, seats [models.NumSeats]models.SeatEntry) (*models.GameRecord, error) {
	rec := &models.GameRecord{ID: gameID, Timestamp: timestamp, Seats: seats}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	if err := s.store.UpdateRecord(ctx, gameID, rec); err != nil {
		return nil, err
	}
	slog.Info("Game corrected", "game_id", gameID)
	return rec, nil
}

// Delete removes one game from the log.
func (s *GameService) Delete(ctx context.Context, gameID string) error {
	if err := s.store.DeleteRecord(ctx, gameID); err != nil {
		return err
	}
	slog.Info("Game deleted", "game_id", gameID)
	return nil
}

// Standings replays the stored log into derived player statistics.
// yearFilter is stats.AllYears or a 4-digit year.
func (s *GameService) Standings(ctx context.Context, yearFilter string) (*stats.Standings, error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return stats.ComputeStandings(records, yearFilter), nil
}
