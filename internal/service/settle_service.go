package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/KTee1986/mahjong-tracker/internal/ledger"
	"github.com/KTee1986/mahjong-tracker/internal/models"
	"github.com/KTee1986/mahjong-tracker/internal/settle"
	"github.com/KTee1986/mahjong-tracker/internal/storage"
)

// LedgerClient is the slice of the ledger API the settlement flow needs.
// Satisfied by *ledger.Client; tests substitute a fake.
type LedgerClient interface {
	Login(ctx context.Context, username, password string) (*ledger.Session, error)
	ListMembers(ctx context.Context, groupID, token string) (map[string]ledger.Member, error)
	SubmitExpense(ctx context.Context, groupID, token string, entry *models.SettlementEntry) (string, error)
	ListDebts(ctx context.Context, groupID, token string) ([]ledger.RawDebt, error)
}

// LedgerConfig carries the ledger deployment the tracker settles into.
type LedgerConfig struct {
	GroupID  string
	Username string
	Password string
}

// SettleService pushes finalized games into the external ledger and
// reads normalized debts back out.
type SettleService struct {
	store  storage.Store
	client LedgerClient
	cfg    LedgerConfig
}

// NewSettleService creates a SettleService.
func NewSettleService(store storage.Store, client LedgerClient, cfg LedgerConfig) *SettleService {
	return &SettleService{store: store, client: client, cfg: cfg}
}

// SettleGame submits one stored game's balances to the ledger. The
// returned transaction id is empty with skipped=true when the game had no
// creditors and there was nothing to submit.
func (s *SettleService) SettleGame(ctx context.Context, gameID string) (txID string, skipped bool, err error) {
	records, err := s.store.ListRecords(ctx)
	if err != nil {
		return "", false, fmt.Errorf("list records: %w", err)
	}
	var rec *models.GameRecord
	for i := range records {
		if records[i].ID == gameID {
			rec = &records[i]
			break
		}
	}
	if rec == nil {
		return "", false, storage.ErrNotFound
	}

	session, err := s.client.Login(ctx, s.cfg.Username, s.cfg.Password)
	if err != nil {
		return "", false, err
	}
	members, err := s.client.ListMembers(ctx, s.cfg.GroupID, session.Token)
	if err != nil {
		return "", false, err
	}

	// Directory for expense building maps the other way: name -> id.
	// Inactive members are still resolvable so historical games settle.
	directory := make(map[string]string, len(members))
	for id, m := range members {
		directory[m.Name] = id
	}

	seats := make([]settle.SeatAssignment, 0, models.NumSeats)
	for _, entry := range rec.Seats {
		seats = append(seats, settle.SeatAssignment{
			Players: entry.JoinedPlayers(),
			Score:   entry.Score,
		})
	}

	entry, err := settle.BuildExpense(seats, directory)
	if errors.Is(err, settle.ErrNoCreditors) {
		slog.Info("Settlement skipped, no creditors", "game_id", gameID)
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}

	txID, err = s.client.SubmitExpense(ctx, s.cfg.GroupID, session.Token, entry)
	if err != nil {
		return "", false, err
	}
	slog.Info("Settlement submitted",
		"game_id", gameID, "transaction_id", txID, "payer", entry.PayerMemberID, "amount", entry.Amount)
	return txID, false, nil
}

// Debts fetches the group's member directory and balances concurrently
// and returns the normalized, display-ready debt list.
func (s *SettleService) Debts(ctx context.Context) ([]models.Debt, error) {
	session, err := s.client.Login(ctx, s.cfg.Username, s.cfg.Password)
	if err != nil {
		return nil, err
	}

	var (
		wg         sync.WaitGroup
		members    map[string]ledger.Member
		membersErr error
		raw        []ledger.RawDebt
		debtsErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		members, membersErr = s.client.ListMembers(ctx, s.cfg.GroupID, session.Token)
	}()
	go func() {
		defer wg.Done()
		raw, debtsErr = s.client.ListDebts(ctx, s.cfg.GroupID, session.Token)
	}()
	wg.Wait()

	if membersErr != nil {
		return nil, membersErr
	}
	if debtsErr != nil {
		return nil, debtsErr
	}

	names := make(map[string]string, len(members))
	for id, m := range members {
		names[id] = m.Name
	}
	return settle.NormalizeDebts(raw, names), nil
}
