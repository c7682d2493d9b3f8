// Package settle maps finalized games onto the external ledger: it builds
// balanced expense payloads from seat scores and normalizes the debts the
// ledger reports back. Everything here is a pure function; submission and
// fetching live in the ledger client.
package settle

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/KTee1986/mahjong-tracker/internal/models"
)

// SeatAssignment is one seat's input to expense building: the joined
// player string (e.g. "Alice + Bob") and the seat's signed score.
type SeatAssignment struct {
	Players string
	Score   float64
}

var (
	// ErrUnbalancedSettlement indicates the resolved scores do not sum to
	// zero. Score entry enforces the zero-sum invariant, so hitting this
	// is a program error upstream, not bad user input.
	ErrUnbalancedSettlement = errors.New("settlement scores do not sum to zero")

	// ErrNoCreditors signals that no seat finished positive, so there is
	// nothing to submit. It is a no-op outcome, not a failure; callers
	// check it with errors.Is and skip submission.
	ErrNoCreditors = errors.New("no creditors, nothing to settle")
)

// PlayerNotMappedError reports every player name that has no entry in the
// ledger member directory. The whole operation fails; no partial payload
// is ever produced.
type PlayerNotMappedError struct {
	Names []string
}

func (e *PlayerNotMappedError) Error() string {
	return fmt.Sprintf("players not mapped to ledger members: %s", strings.Join(e.Names, ", "))
}

// memberScore pairs a resolved member with their seat score, preserving
// seat order.
type memberScore struct {
	memberID string
	score    float64
}

// BuildExpense turns one finalized game's seat assignments into a balanced
// SettlementEntry for the external ledger. directory maps player display
// names to ledger member ids; lookups are exact and case-sensitive.
//
// When two players share a seat, each resolved member carries the full,
// unsplit seat score. This deliberately differs from the per-capita split
// the standings use for averages; the duplicated amounts are the settlement
// policy of record.
//
// Members whose score is exactly zero are left out of the payload. The
// first creditor in seat order fronts the whole creditor total as sole
// payer. Returns ErrNoCreditors when no seat finished positive.
func BuildExpense(seats []SeatAssignment, directory map[string]string) (*models.SettlementEntry, error) {
	var (
		resolved                   []memberScore
		unmapped                   []string
		creditorTotal, debtorTotal float64
	)
	for _, seat := range seats {
		names := models.SplitPlayers(seat.Players)
		if len(names) == 0 {
			continue // unused seat
		}
		// Balance is checked on seat scores: the per-member duplication
		// below intentionally inflates the share totals for shared seats.
		if seat.Score > 0 {
			creditorTotal += seat.Score
		} else {
			debtorTotal += seat.Score
		}
		for _, name := range names {
			memberID, ok := directory[name]
			if !ok {
				unmapped = append(unmapped, name)
				continue
			}
			resolved = append(resolved, memberScore{memberID: memberID, score: seat.Score})
		}
	}
	if len(unmapped) > 0 {
		return nil, &PlayerNotMappedError{Names: unmapped}
	}

	if math.Abs(creditorTotal+debtorTotal) > models.ScoreTolerance {
		return nil, fmt.Errorf("%w: creditors %.2f, debtors %.2f",
			ErrUnbalancedSettlement, creditorTotal, debtorTotal)
	}

	var payer string
	shares := make([]models.ParticipantShare, 0, len(resolved))
	for _, ms := range resolved {
		if ms.score == 0 {
			continue // zero scores stay out of the payload
		}
		if ms.score > 0 && payer == "" {
			payer = ms.memberID
		}
		shares = append(shares, models.ParticipantShare{MemberID: ms.memberID, Amount: ms.score})
	}
	if payer == "" {
		return nil, ErrNoCreditors
	}

	return &models.SettlementEntry{
		PayerMemberID: payer,
		Amount:        creditorTotal,
		Shares:        shares,
	}, nil
}
