package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Seat identifies one of the four fixed positions in a game.
type Seat int

const (
	East Seat = iota
	South
	West
	North

	// NumSeats is the number of seats in every game.
	NumSeats = 4
)

// String returns the display name of the seat.
func (s Seat) String() string {
	switch s {
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	case North:
		return "North"
	}
	return fmt.Sprintf("Seat(%d)", int(s))
}

// PlayerSeparator joins multiple display names occupying one seat.
const PlayerSeparator = " + "

// ScoreTolerance is the acceptable floating-point drift when checking
// that the four seat scores of a game sum to zero.
const ScoreTolerance = 0.01

// SeatEntry holds the occupants and score of one seat for one game.
// A seat may be shared by up to two players; an empty Players slice
// means the seat was unused (score must then be zero for a valid game).
type SeatEntry struct {
	// Players is the ordered list of display names occupying the seat.
	Players []string `json:"players"`

	// Score is the signed result for the whole seat.
	Score float64 `json:"score"`
}

// JoinedPlayers returns the seat occupants as a single display string,
// e.g. "Alice + Bob". Empty seats yield "".
func (e SeatEntry) JoinedPlayers() string {
	return strings.Join(e.Players, PlayerSeparator)
}

// SplitPlayers parses a joined player string back into individual names.
// Blank names produced by stray separators are dropped.
func SplitPlayers(s string) []string {
	var names []string
	for _, part := range strings.Split(s, "+") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// GameRecord is one finalized game. Records are immutable once created;
// corrections go through explicit update/delete operations keyed by ID.
type GameRecord struct {
	// ID is the unique identifier for the game (UUID format).
	ID string `json:"id"`

	// Timestamp is the ISO-8601 creation time of the record.
	Timestamp string `json:"timestamp"`

	// Seats holds the four seat entries in East, South, West, North order.
	Seats [NumSeats]SeatEntry `json:"seats"`
}

var (
	// ErrUnbalancedScores indicates the four seat scores do not sum to zero.
	ErrUnbalancedScores = errors.New("seat scores must sum to zero")

	// ErrRowWidth indicates a sheet row does not match the column contract.
	ErrRowWidth = errors.New("row does not match the expected column layout")
)

// Validate checks the creation-time invariants of a record: a parseable
// timestamp, at most two players per seat, no score on an empty seat, and
// seat scores summing to zero within ScoreTolerance.
func (r *GameRecord) Validate() error {
	if _, err := time.Parse(time.RFC3339, r.Timestamp); err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", r.Timestamp, err)
	}

	var sum float64
	occupied := 0
	for seat, entry := range r.Seats {
		if len(entry.Players) > 2 {
			return fmt.Errorf("seat %s: at most two players may share a seat", Seat(seat))
		}
		if len(entry.Players) == 0 && entry.Score != 0 {
			return fmt.Errorf("seat %s: empty seat carries a score", Seat(seat))
		}
		for _, name := range entry.Players {
			if strings.TrimSpace(name) == "" {
				return fmt.Errorf("seat %s: blank player name", Seat(seat))
			}
		}
		if len(entry.Players) > 0 {
			occupied++
		}
		sum += entry.Score
	}

	if occupied == 0 {
		return errors.New("game has no players")
	}
	if math.Abs(sum) > ScoreTolerance {
		return fmt.Errorf("%w: sum is %.2f", ErrUnbalancedScores, sum)
	}
	return nil
}

// Year returns the 4-digit year of the record's timestamp, or "" when the
// timestamp is too short to carry one.
func (r *GameRecord) Year() string {
	if len(r.Timestamp) < 4 {
		return ""
	}
	return r.Timestamp[:4]
}

// Month returns the "YYYY-MM" prefix of the record's timestamp, or "" when
// the timestamp is too short to carry one.
func (r *GameRecord) Month() string {
	if len(r.Timestamp) < 7 {
		return ""
	}
	return r.Timestamp[:7]
}

// RowWidth is the number of cells in the versioned sheet row layout:
// [id, timestamp, eastPlayers, eastScore, southPlayers, southScore,
// westPlayers, westScore, northPlayers, northScore].
const RowWidth = 10

// Row flattens the record into the fixed 10-cell sheet layout.
func (r *GameRecord) Row() []string {
	cells := make([]string, 0, RowWidth)
	cells = append(cells, r.ID, r.Timestamp)
	for _, entry := range r.Seats {
		cells = append(cells,
			entry.JoinedPlayers(),
			strconv.FormatFloat(entry.Score, 'f', -1, 64),
		)
	}
	return cells
}

// RecordFromRow parses a fixed-width sheet row into a GameRecord. Rows of
// the wrong width are rejected with ErrRowWidth rather than guessed at.
func RecordFromRow(cells []string) (*GameRecord, error) {
	if len(cells) != RowWidth {
		return nil, fmt.Errorf("%w: got %d cells, want %d", ErrRowWidth, len(cells), RowWidth)
	}

	rec := &GameRecord{ID: cells[0], Timestamp: cells[1]}
	for seat := 0; seat < NumSeats; seat++ {
		players := SplitPlayers(cells[2+seat*2])
		scoreCell := cells[3+seat*2]

		var score float64
		if scoreCell != "" {
			var err error
			score, err = strconv.ParseFloat(scoreCell, 64)
			if err != nil {
				return nil, fmt.Errorf("seat %s: invalid score %q: %w", Seat(seat), scoreCell, err)
			}
		}
		rec.Seats[seat] = SeatEntry{Players: players, Score: score}
	}
	return rec, nil
}
