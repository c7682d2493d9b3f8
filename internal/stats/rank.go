package stats

import "sort"

// Metric selects the player statistic a ranking sorts by.
type Metric string

const (
	MetricGames      Metric = "games"
	MetricWins       Metric = "wins"
	MetricWinRate    Metric = "win_rate"
	MetricTotalScore Metric = "total_score"
	MetricAverage    Metric = "average"
	MetricHighest    Metric = "highest"
	MetricLowest     Metric = "lowest"
	MetricVariance   Metric = "variance"
)

// Direction orders a ranking.
type Direction int

const (
	// Descending puts the largest value first ("most", "best", "highest").
	Descending Direction = iota

	// Ascending puts the smallest value first ("least", "worst", "lowest").
	Ascending
)

// metricValue extracts the sortable value for one player. Unknown metrics
// fall back to games played.
func metricValue(p *PlayerStat, metric Metric) float64 {
	switch metric {
	case MetricWins:
		return float64(p.Wins)
	case MetricWinRate:
		return p.WinRate()
	case MetricTotalScore:
		return p.TotalScore
	case MetricAverage:
		return p.Average()
	case MetricHighest:
		return p.Highest
	case MetricLowest:
		return p.Lowest
	case MetricVariance:
		return p.Variance
	default:
		return float64(p.Games)
	}
}

// RankBy returns all players ordered by the given metric. The sort is
// stable over first-appearance order, so ties keep the order players
// first showed up in the record log.
func (s *Standings) RankBy(metric Metric, dir Direction) []*PlayerStat {
	ranked := s.Players()
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := metricValue(ranked[i], metric), metricValue(ranked[j], metric)
		if dir == Ascending {
			return a < b
		}
		return a > b
	})
	return ranked
}

// leader returns the head of a ranking, nil when no players exist.
func (s *Standings) leader(metric Metric, dir Direction) *PlayerStat {
	ranked := s.RankBy(metric, dir)
	if len(ranked) == 0 {
		return nil
	}
	return ranked[0]
}

// MostPlayed returns the player with the most games, nil when empty.
func (s *Standings) MostPlayed() *PlayerStat { return s.leader(MetricGames, Descending) }

// LeastPlayed returns the player with the fewest games, nil when empty.
func (s *Standings) LeastPlayed() *PlayerStat { return s.leader(MetricGames, Ascending) }

// BiggestWin returns the player with the highest single-game score,
// nil when empty.
func (s *Standings) BiggestWin() *PlayerStat { return s.leader(MetricHighest, Descending) }

// BiggestLoss returns the player with the lowest single-game score,
// nil when empty.
func (s *Standings) BiggestLoss() *PlayerStat { return s.leader(MetricLowest, Ascending) }

// MostVolatile returns the player with the highest score variance,
// nil when empty.
func (s *Standings) MostVolatile() *PlayerStat { return s.leader(MetricVariance, Descending) }
