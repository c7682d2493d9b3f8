package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KTee1986/mahjong-tracker/internal/service"
	"github.com/KTee1986/mahjong-tracker/internal/stats"
)

// StandingsHandler exposes the derived player statistics.
type StandingsHandler struct {
	games *service.GameService
}

// NewStandingsHandler creates a StandingsHandler.
func NewStandingsHandler(games *service.GameService) *StandingsHandler {
	return &StandingsHandler{games: games}
}

// playerView flattens a PlayerStat plus its computed ratios for JSON.
type playerView struct {
	*stats.PlayerStat
	Average float64 `json:"average"`
	WinRate float64 `json:"win_rate"`
}

func viewOf(p *stats.PlayerStat) *playerView {
	if p == nil {
		return nil
	}
	return &playerView{PlayerStat: p, Average: p.Average(), WinRate: p.WinRate()}
}

// Overview returns ranked players and the headline leaders. The optional
// ?year= query scopes the standings to one 4-digit year.
func (h *StandingsHandler) Overview(c *gin.Context) {
	standings, err := h.games.Standings(c.Request.Context(), c.Query("year"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ranked := standings.RankBy(stats.MetricTotalScore, stats.Descending)
	players := make([]*playerView, 0, len(ranked))
	for _, p := range ranked {
		players = append(players, viewOf(p))
	}

	c.JSON(http.StatusOK, gin.H{
		"players": players,
		"leaders": gin.H{
			"most_played":   viewOf(standings.MostPlayed()),
			"least_played":  viewOf(standings.LeastPlayed()),
			"biggest_win":   viewOf(standings.BiggestWin()),
			"biggest_loss":  viewOf(standings.BiggestLoss()),
			"most_volatile": viewOf(standings.MostVolatile()),
		},
	})
}

// Player returns one player's detail view: partner and co-player
// aggregates and the monthly score trend.
func (h *StandingsHandler) Player(c *gin.Context) {
	standings, err := h.games.Standings(c.Request.Context(), c.Query("year"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	name := c.Param("name")
	p := standings.Player(name)
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown player"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"player":        viewOf(p),
		"partners":      standings.Partners(name),
		"co_players":    standings.CoPlayers(name),
		"monthly_trend": standings.MonthlyTrend(name),
	})
}
