package stats

import (
	"math"
	"reflect"
	"testing"

	"github.com/KTee1986/mahjong-tracker/internal/models"
)

func game(ts string, seats ...models.SeatEntry) models.GameRecord {
	rec := models.GameRecord{ID: "g", Timestamp: ts}
	copy(rec.Seats[:], seats)
	return rec
}

func seat(score float64, players ...string) models.SeatEntry {
	return models.SeatEntry{Players: players, Score: score}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 0.01
}

func TestComputeStandingsBasic(t *testing.T) {
	records := []models.GameRecord{
		game("2024-01-05T19:00:00Z",
			seat(10, "A"), seat(-10, "B"), seat(0), seat(0)),
		game("2024-01-12T19:00:00Z",
			seat(-5, "A"), seat(5, "B"), seat(0), seat(0)),
	}

	s := ComputeStandings(records, AllYears)

	a := s.Player("A")
	if a == nil {
		t.Fatal("player A missing from standings")
	}
	if a.Games != 2 || a.Wins != 1 || a.Losses != 1 {
		t.Errorf("A games/wins/losses = %d/%d/%d, want 2/1/1", a.Games, a.Wins, a.Losses)
	}
	if !almostEqual(a.Average(), 2.5) {
		t.Errorf("A average = %v, want 2.5", a.Average())
	}
	if !almostEqual(a.Highest, 10) || a.HighestAt != "2024-01-05T19:00:00Z" {
		t.Errorf("A highest = %v at %s, want 10 at first game", a.Highest, a.HighestAt)
	}
	if !almostEqual(a.Lowest, -5) || a.LowestAt != "2024-01-12T19:00:00Z" {
		t.Errorf("A lowest = %v at %s, want -5 at second game", a.Lowest, a.LowestAt)
	}
	// scores 10, -5: mean 2.5, deviations 7.5/-7.5, variance 56.25
	if !almostEqual(a.Variance, 56.25) {
		t.Errorf("A variance = %v, want 56.25", a.Variance)
	}
}

func TestComputeStandingsIdempotent(t *testing.T) {
	records := []models.GameRecord{
		game("2024-02-01T19:00:00Z",
			seat(30, "A", "B"), seat(-30, "C"), seat(0), seat(0)),
		game("2024-03-01T19:00:00Z",
			seat(12.5, "C"), seat(-12.5, "A"), seat(0), seat(0)),
	}

	first := ComputeStandings(records, AllYears)
	second := ComputeStandings(records, AllYears)

	for _, name := range []string{"A", "B", "C"} {
		if !reflect.DeepEqual(first.Player(name), second.Player(name)) {
			t.Errorf("player %s differs between identical runs:\n%+v\n%+v",
				name, first.Player(name), second.Player(name))
		}
	}
	if !reflect.DeepEqual(first.Partners("A"), second.Partners("A")) {
		t.Error("partner stats differ between identical runs")
	}
}

func TestSharedSeatAttribution(t *testing.T) {
	records := []models.GameRecord{
		game("2024-02-01T19:00:00Z",
			seat(30, "A", "B"), seat(-30, "C"), seat(0), seat(0)),
	}

	s := ComputeStandings(records, AllYears)

	// Counting stats take the raw seat score for every occupant.
	for _, name := range []string{"A", "B"} {
		p := s.Player(name)
		if p.Wins != 1 {
			t.Errorf("%s wins = %d, want 1", name, p.Wins)
		}
		if !almostEqual(p.Highest, 30) {
			t.Errorf("%s highest = %v, want raw 30", name, p.Highest)
		}
		// Averaging stats use the per-capita split.
		if !almostEqual(p.TotalScore, 15) {
			t.Errorf("%s total = %v, want split 15", name, p.TotalScore)
		}
	}

	// Partner aggregates carry the split score.
	best := s.BestPartner("A")
	if best == nil || best.Other != "B" {
		t.Fatalf("A best partner = %+v, want B", best)
	}
	if !almostEqual(best.Score, 15) || best.Games != 1 {
		t.Errorf("A/B partner stat = %+v, want score 15 over 1 game", best)
	}

	// Co-player aggregates pair A with C across seats, still split score.
	co := s.CoPlayers("A")
	if len(co) != 1 || co[0].Other != "C" {
		t.Fatalf("A co-players = %+v, want just C", co)
	}
	if !almostEqual(co[0].Score, 15) {
		t.Errorf("A/C co-player score = %v, want A's split 15", co[0].Score)
	}
}

func TestYearFilter(t *testing.T) {
	records := []models.GameRecord{
		game("2023-11-01T19:00:00Z",
			seat(10, "A"), seat(-10, "B"), seat(0), seat(0)),
		game("2024-01-01T19:00:00Z",
			seat(20, "A"), seat(-20, "B"), seat(0), seat(0)),
	}

	s := ComputeStandings(records, "2024")
	a := s.Player("A")
	if a.Games != 1 {
		t.Errorf("A games with 2024 filter = %d, want 1", a.Games)
	}
	if !almostEqual(a.Highest, 20) {
		t.Errorf("A highest with 2024 filter = %v, want 20", a.Highest)
	}

	trend := s.MonthlyTrend("A")
	if len(trend) != 1 || trend[0].Month != "2024-01" {
		t.Errorf("A monthly trend = %+v, want single 2024-01 bucket", trend)
	}
}

func TestMonthlyTrendSorted(t *testing.T) {
	records := []models.GameRecord{
		game("2024-03-01T19:00:00Z",
			seat(10, "A"), seat(-10, "B"), seat(0), seat(0)),
		game("2024-01-01T19:00:00Z",
			seat(6, "A"), seat(-6, "B"), seat(0), seat(0)),
		game("2024-01-15T19:00:00Z",
			seat(-2, "A"), seat(2, "B"), seat(0), seat(0)),
	}

	trend := ComputeStandings(records, AllYears).MonthlyTrend("A")
	if len(trend) != 2 {
		t.Fatalf("trend has %d buckets, want 2", len(trend))
	}
	if trend[0].Month != "2024-01" || trend[1].Month != "2024-03" {
		t.Errorf("trend months = %s, %s; want chronological", trend[0].Month, trend[1].Month)
	}
	if !almostEqual(trend[0].Average, 2) || trend[0].Games != 2 {
		t.Errorf("2024-01 bucket = %+v, want average 2 over 2 games", trend[0])
	}
}

func TestMalformedSeatsSkipped(t *testing.T) {
	records := []models.GameRecord{
		// Seat with score but no players must not abort the rest.
		game("2024-01-01T19:00:00Z",
			seat(10, "A"), seat(-10), seat(0), seat(0)),
		// Unbalanced record still folds without panicking.
		game("2024-01-02T19:00:00Z",
			seat(100, "A"), seat(-10, "B"), seat(0), seat(0)),
		// Garbage timestamp: no year, no monthly bucket, still counted
		// when no filter is set.
		game("bogus",
			seat(5, "A"), seat(-5, "B"), seat(0), seat(0)),
	}

	s := ComputeStandings(records, AllYears)
	if got := s.Player("A").Games; got != 3 {
		t.Errorf("A games = %d, want 3 (malformed seats skip, records continue)", got)
	}
	if got := len(s.MonthlyTrend("A")); got != 1 {
		t.Errorf("A monthly buckets = %d, want 1 (bogus timestamp contributes none)", got)
	}

	// With a filter, the bogus-timestamp record is excluded entirely.
	filtered := ComputeStandings(records, "2024")
	if got := filtered.Player("A").Games; got != 2 {
		t.Errorf("A games with filter = %d, want 2", got)
	}
}

func TestRankings(t *testing.T) {
	records := []models.GameRecord{
		game("2024-01-01T19:00:00Z",
			seat(10, "A"), seat(-10, "B"), seat(0), seat(0)),
		game("2024-01-02T19:00:00Z",
			seat(50, "B"), seat(-50, "C"), seat(0), seat(0)),
		game("2024-01-03T19:00:00Z",
			seat(1, "A"), seat(-1, "B"), seat(0), seat(0)),
	}

	s := ComputeStandings(records, AllYears)

	if got := s.MostPlayed(); got == nil || got.Name != "B" {
		t.Errorf("MostPlayed = %+v, want B with 3 games", got)
	}
	if got := s.LeastPlayed(); got == nil || got.Name != "C" {
		t.Errorf("LeastPlayed = %+v, want C with 1 game", got)
	}
	if got := s.BiggestWin(); got == nil || got.Name != "B" {
		t.Errorf("BiggestWin = %+v, want B (raw 50)", got)
	}
	if got := s.BiggestLoss(); got == nil || got.Name != "C" {
		t.Errorf("BiggestLoss = %+v, want C (raw -50)", got)
	}
	if got := s.MostVolatile(); got == nil || got.Name != "B" {
		t.Errorf("MostVolatile = %+v, want B", got)
	}
}

func TestRankingTiesKeepInsertionOrder(t *testing.T) {
	records := []models.GameRecord{
		game("2024-01-01T19:00:00Z",
			seat(10, "A"), seat(-10, "B"), seat(0), seat(0)),
	}

	ranked := ComputeStandings(records, AllYears).RankBy(MetricGames, Descending)
	if len(ranked) != 2 || ranked[0].Name != "A" || ranked[1].Name != "B" {
		t.Errorf("tied ranking order = %v, want insertion order A, B", names(ranked))
	}
}

func TestEmptyStandings(t *testing.T) {
	s := ComputeStandings(nil, AllYears)

	if s.Len() != 0 {
		t.Errorf("empty standings has %d players", s.Len())
	}
	if got := s.MostPlayed(); got != nil {
		t.Errorf("MostPlayed on empty = %+v, want nil", got)
	}
	if got := s.BiggestWin(); got != nil {
		t.Errorf("BiggestWin on empty = %+v, want nil", got)
	}
	if got := s.BestPartner("A"); got != nil {
		t.Errorf("BestPartner on empty = %+v, want nil", got)
	}
	if got := s.MonthlyTrend("A"); got != nil {
		t.Errorf("MonthlyTrend on empty = %+v, want nil", got)
	}
}

func TestPopulationVariance(t *testing.T) {
	tests := []struct {
		name   string
		scores []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4}, 0},
		{"symmetric", []float64{10, -5}, 56.25},
		{"constant", []float64{3, 3, 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := populationVariance(tt.scores); !almostEqual(got, tt.want) {
				t.Errorf("populationVariance(%v) = %v, want %v", tt.scores, got, tt.want)
			}
		})
	}
}

func names(players []*PlayerStat) []string {
	out := make([]string, len(players))
	for i, p := range players {
		out[i] = p.Name
	}
	return out
}
