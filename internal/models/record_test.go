package models

import (
	"errors"
	"math"
	"testing"
)

func validRecord() *GameRecord {
	return &GameRecord{
		ID:        "g1",
		Timestamp: "2024-03-01T20:15:00Z",
		Seats: [NumSeats]SeatEntry{
			{Players: []string{"Alice"}, Score: 25.5},
			{Players: []string{"Bob", "Carol"}, Score: -10.5},
			{Players: []string{"Dave"}, Score: -15},
			{Players: nil, Score: 0},
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*GameRecord)
		wantErr bool
	}{
		{
			name:   "valid record",
			mutate: func(r *GameRecord) {},
		},
		{
			name:    "unbalanced scores",
			mutate:  func(r *GameRecord) { r.Seats[East].Score = 30 },
			wantErr: true,
		},
		{
			name:    "drift within tolerance",
			mutate:  func(r *GameRecord) { r.Seats[East].Score = 25.505 },
			wantErr: false,
		},
		{
			name:    "bad timestamp",
			mutate:  func(r *GameRecord) { r.Timestamp = "yesterday" },
			wantErr: true,
		},
		{
			name:    "three players on one seat",
			mutate:  func(r *GameRecord) { r.Seats[South].Players = []string{"Bob", "Carol", "Eve"} },
			wantErr: true,
		},
		{
			name: "score on empty seat",
			mutate: func(r *GameRecord) {
				r.Seats[North].Score = 5
				r.Seats[East].Score = 20.5
			},
			wantErr: true,
		},
		{
			name:    "blank player name",
			mutate:  func(r *GameRecord) { r.Seats[East].Players = []string{"  "} },
			wantErr: true,
		},
		{
			name: "no players at all",
			mutate: func(r *GameRecord) {
				for i := range r.Seats {
					r.Seats[i] = SeatEntry{}
				}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)
			err := rec.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateUnbalancedSentinel(t *testing.T) {
	rec := validRecord()
	rec.Seats[East].Score = 100
	if err := rec.Validate(); !errors.Is(err, ErrUnbalancedScores) {
		t.Errorf("expected ErrUnbalancedScores, got %v", err)
	}
}

func TestRowRoundTrip(t *testing.T) {
	rec := validRecord()
	cells := rec.Row()
	if len(cells) != RowWidth {
		t.Fatalf("Row() returned %d cells, want %d", len(cells), RowWidth)
	}

	parsed, err := RecordFromRow(cells)
	if err != nil {
		t.Fatalf("RecordFromRow failed: %v", err)
	}
	if parsed.ID != rec.ID || parsed.Timestamp != rec.Timestamp {
		t.Errorf("id/timestamp mismatch: got %s/%s", parsed.ID, parsed.Timestamp)
	}
	for seat := range rec.Seats {
		if math.Abs(parsed.Seats[seat].Score-rec.Seats[seat].Score) > 1e-9 {
			t.Errorf("seat %s score = %v, want %v", Seat(seat), parsed.Seats[seat].Score, rec.Seats[seat].Score)
		}
		if parsed.Seats[seat].JoinedPlayers() != rec.Seats[seat].JoinedPlayers() {
			t.Errorf("seat %s players = %q, want %q", Seat(seat),
				parsed.Seats[seat].JoinedPlayers(), rec.Seats[seat].JoinedPlayers())
		}
	}
}

func TestRecordFromRowWidth(t *testing.T) {
	if _, err := RecordFromRow([]string{"id", "ts", "Alice", "10"}); !errors.Is(err, ErrRowWidth) {
		t.Errorf("expected ErrRowWidth, got %v", err)
	}
}

func TestRecordFromRowBadScore(t *testing.T) {
	cells := validRecord().Row()
	cells[3] = "ten"
	if _, err := RecordFromRow(cells); err == nil {
		t.Error("expected error for non-numeric score cell")
	}
}

func TestSplitPlayers(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"Alice", 1},
		{"Alice + Bob", 2},
		{"Alice+Bob", 2},
		{"", 0},
		{" + ", 0},
	}
	for _, tt := range tests {
		if got := SplitPlayers(tt.in); len(got) != tt.want {
			t.Errorf("SplitPlayers(%q) = %v, want %d names", tt.in, got, tt.want)
		}
	}
}
