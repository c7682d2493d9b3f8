// Package stats derives player standings from the append-only game log.
//
// All computation is pure and in-memory: the caller fetches the records,
// ComputeStandings replays them. Two attribution policies coexist on
// purpose and are kept as separately named functions: counting statistics
// (games, wins, highest win) use the full seat score for every seat
// occupant, while averaging statistics (total/average score, monthly
// trend, partner and co-player aggregates) split a shared seat's score
// per capita.
package stats

import (
	"sort"

	"github.com/KTee1986/mahjong-tracker/internal/models"
)

// AllYears disables year filtering in ComputeStandings.
const AllYears = ""

// PlayerStat is the derived summary for one player. It is recomputed on
// every query and never persisted.
type PlayerStat struct {
	// Name is the player's display name.
	Name string `json:"name"`

	// Games is the number of games the player appeared in.
	Games int `json:"games"`

	// Wins counts games where the player's seat finished positive.
	Wins int `json:"wins"`

	// Losses counts games where the player's seat finished negative.
	Losses int `json:"losses"`

	// TotalScore accumulates the player's per-capita split scores.
	TotalScore float64 `json:"total_score"`

	// Scores is the raw per-game seat score sequence, in game order.
	Scores []float64 `json:"scores"`

	// Highest is the best single-game raw seat score, with its timestamp.
	Highest   float64 `json:"highest"`
	HighestAt string  `json:"highest_at"`

	// Lowest is the worst single-game raw seat score, with its timestamp.
	Lowest   float64 `json:"lowest"`
	LowestAt string  `json:"lowest_at"`

	// Variance is the population variance of the raw score sequence.
	Variance float64 `json:"variance"`
}

// Average returns the mean per-capita score per game, 0 for no games.
func (p *PlayerStat) Average() float64 {
	if p.Games == 0 {
		return 0
	}
	return p.TotalScore / float64(p.Games)
}

// WinRate returns the fraction of games won, 0 for no games.
func (p *PlayerStat) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games)
}

// PairStat accumulates one player's split score over games shared with a
// specific other player.
type PairStat struct {
	// Other is the display name of the other player in the pair.
	Other string `json:"other"`

	// Score is the accumulated per-capita split score over shared games.
	Score float64 `json:"score"`

	// Games counts the shared games.
	Games int `json:"games"`
}

// MonthlyPoint is one month of a player's score trend.
type MonthlyPoint struct {
	// Month is the "YYYY-MM" bucket key.
	Month string `json:"month"`

	// Average is the mean per-capita score over the month's games.
	Average float64 `json:"average"`

	// Games counts the games folded into the bucket.
	Games int `json:"games"`
}

type monthlyAgg struct {
	score float64
	games int
}

// Standings is the full derived view over a record sequence. Build it
// with ComputeStandings; the zero value is empty but usable.
type Standings struct {
	players   map[string]*PlayerStat
	order     []string // insertion order, breaks ranking ties
	partners  map[string]map[string]*PairStat
	coPlayers map[string]map[string]*PairStat
	monthly   map[string]map[string]*monthlyAgg
}

// rawSeatAttribution attributes a seat's full score to one occupant,
// regardless of how many players share the seat. Counting statistics
// (wins, highest, variance) use this policy.
func rawSeatAttribution(score float64, occupants int) float64 {
	return score
}

// perCapitaSplit divides a seat's score evenly among its occupants.
// Averaging statistics (totals, monthly trend, partner stats) use this
// policy.
func perCapitaSplit(score float64, occupants int) float64 {
	return score / float64(occupants)
}

// ComputeStandings replays records into a Standings view. yearFilter is
// AllYears for no filtering or a 4-digit year matched against the first
// four characters of each record's timestamp; filtering happens once up
// front, so every aggregate in the result is scoped to the same record
// set. Seats with no players are skipped; a record whose timestamp is too
// short to carry a year is skipped entirely when a filter is set. The
// function never mutates its input and is safe to call repeatedly.
func ComputeStandings(records []models.GameRecord, yearFilter string) *Standings {
	s := &Standings{
		players:   make(map[string]*PlayerStat),
		partners:  make(map[string]map[string]*PairStat),
		coPlayers: make(map[string]map[string]*PairStat),
		monthly:   make(map[string]map[string]*monthlyAgg),
	}

	for i := range records {
		rec := &records[i]
		if yearFilter != AllYears && rec.Year() != yearFilter {
			continue
		}
		s.fold(rec)
	}

	for _, name := range s.order {
		p := s.players[name]
		p.Variance = populationVariance(p.Scores)
	}
	return s
}

// fold accumulates one record into the standings.
func (s *Standings) fold(rec *models.GameRecord) {
	for seat := range rec.Seats {
		entry := &rec.Seats[seat]
		occupants := len(entry.Players)
		if occupants == 0 {
			continue // unused or malformed seat
		}

		raw := rawSeatAttribution(entry.Score, occupants)
		split := perCapitaSplit(entry.Score, occupants)

		for _, name := range entry.Players {
			p := s.player(name)
			p.Games++
			if raw > 0 {
				p.Wins++
			} else if raw < 0 {
				p.Losses++
			}
			p.Scores = append(p.Scores, raw)
			if p.Games == 1 || raw > p.Highest {
				p.Highest = raw
				p.HighestAt = rec.Timestamp
			}
			if p.Games == 1 || raw < p.Lowest {
				p.Lowest = raw
				p.LowestAt = rec.Timestamp
			}
			p.TotalScore += split

			if month := rec.Month(); month != "" {
				s.foldMonthly(name, month, split)
			}

			// Partners: the other occupants of the same seat.
			for _, other := range entry.Players {
				if other != name {
					s.foldPair(s.partners, name, other, split)
				}
			}
		}

		// Co-players: every player seated elsewhere in the same game.
		for _, name := range entry.Players {
			for otherSeat := range rec.Seats {
				if otherSeat == seat {
					continue
				}
				for _, other := range rec.Seats[otherSeat].Players {
					s.foldPair(s.coPlayers, name, other, split)
				}
			}
		}
	}
}

func (s *Standings) player(name string) *PlayerStat {
	if p, ok := s.players[name]; ok {
		return p
	}
	p := &PlayerStat{Name: name}
	s.players[name] = p
	s.order = append(s.order, name)
	return p
}

func (s *Standings) foldPair(m map[string]map[string]*PairStat, name, other string, split float64) {
	if m[name] == nil {
		m[name] = make(map[string]*PairStat)
	}
	pair, ok := m[name][other]
	if !ok {
		pair = &PairStat{Other: other}
		m[name][other] = pair
	}
	pair.Score += split
	pair.Games++
}

func (s *Standings) foldMonthly(name, month string, split float64) {
	if s.monthly[name] == nil {
		s.monthly[name] = make(map[string]*monthlyAgg)
	}
	agg, ok := s.monthly[name][month]
	if !ok {
		agg = &monthlyAgg{}
		s.monthly[name][month] = agg
	}
	agg.score += split
	agg.games++
}

// populationVariance is the mean of squared deviations from the mean.
func populationVariance(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, v := range scores {
		sum += v
	}
	mean := sum / float64(len(scores))

	var sq float64
	for _, v := range scores {
		d := v - mean
		sq += d * d
	}
	return sq / float64(len(scores))
}

// Player returns the stat for one player, nil when unknown.
func (s *Standings) Player(name string) *PlayerStat {
	return s.players[name]
}

// Players returns all player stats in first-appearance order.
func (s *Standings) Players() []*PlayerStat {
	out := make([]*PlayerStat, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.players[name])
	}
	return out
}

// Len reports the number of distinct players seen.
func (s *Standings) Len() int {
	return len(s.order)
}

// MonthlyTrend returns the player's per-month averages sorted by month.
// ISO "YYYY-MM" keys sort chronologically as strings.
func (s *Standings) MonthlyTrend(name string) []MonthlyPoint {
	buckets := s.monthly[name]
	if len(buckets) == 0 {
		return nil
	}
	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	out := make([]MonthlyPoint, 0, len(months))
	for _, month := range months {
		agg := buckets[month]
		out = append(out, MonthlyPoint{
			Month:   month,
			Average: agg.score / float64(agg.games),
			Games:   agg.games,
		})
	}
	return out
}

// Partners returns the player's same-seat partner aggregates ordered by
// accumulated score, best first. Ties keep map-independent stable order
// by other-player name.
func (s *Standings) Partners(name string) []PairStat {
	return sortedPairs(s.partners[name])
}

// CoPlayers returns the player's other-seat co-player aggregates ordered
// by accumulated score, best first.
func (s *Standings) CoPlayers(name string) []PairStat {
	return sortedPairs(s.coPlayers[name])
}

// BestPartner returns the partner with the highest accumulated split
// score, nil when the player never shared a seat.
func (s *Standings) BestPartner(name string) *PairStat {
	pairs := s.Partners(name)
	if len(pairs) == 0 {
		return nil
	}
	return &pairs[0]
}

// WorstPartner returns the partner with the lowest accumulated split
// score, nil when the player never shared a seat.
func (s *Standings) WorstPartner(name string) *PairStat {
	pairs := s.Partners(name)
	if len(pairs) == 0 {
		return nil
	}
	return &pairs[len(pairs)-1]
}

func sortedPairs(m map[string]*PairStat) []PairStat {
	if len(m) == 0 {
		return nil
	}
	out := make([]PairStat, 0, len(m))
	for _, pair := range m {
		out = append(out, *pair)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Other < out[j].Other
	})
	return out
}
