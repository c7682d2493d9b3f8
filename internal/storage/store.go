// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/KTee1986/mahjong-tracker/internal/models"
)

// ErrNotFound is returned when an update or delete targets a game id, or
// a lookup targets a user, that does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the persistence operations of the tracker. The game log
// is append-mostly: records are listed in insertion order for replay, and
// update/delete exist only for administrative corrections, each targeting
// exactly one row by unique game id.
type Store interface {
	// ListRecords returns every game record in insertion order, oldest
	// first. This is the input the standings replay consumes.
	ListRecords(ctx context.Context) ([]models.GameRecord, error)

	// AppendRecord persists a new record and returns its game id. The
	// record must already carry a generated ID and timestamp.
	AppendRecord(ctx context.Context, rec *models.GameRecord) (string, error)

	// UpdateRecord replaces the record with the given id.
	// Returns ErrNotFound when the id matches no row.
	UpdateRecord(ctx context.Context, gameID string, rec *models.GameRecord) error

	// DeleteRecord removes the record with the given id.
	// Returns ErrNotFound when the id matches no row.
	DeleteRecord(ctx context.Context, gameID string) error

	// GetUserByName fetches an administrator account by login name.
	// Returns ErrNotFound when no such user exists.
	GetUserByName(ctx context.Context, name string) (*models.User, error)

	// CreateUser persists a new administrator account.
	CreateUser(ctx context.Context, user *models.User) error

	// Close releases any resources held by the store.
	Close() error
}
