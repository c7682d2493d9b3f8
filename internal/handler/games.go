package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KTee1986/mahjong-tracker/internal/models"
	"github.com/KTee1986/mahjong-tracker/internal/service"
	"github.com/KTee1986/mahjong-tracker/internal/storage"
)

// GameHandler exposes the game log: record, list, correct, delete.
type GameHandler struct {
	games *service.GameService
}

// NewGameHandler creates a GameHandler.
func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

type seatPayload struct {
	Players []string `json:"players"`
	Score   float64  `json:"score"`
}

type gameRequest struct {
	East  seatPayload `json:"east"`
	South seatPayload `json:"south"`
	West  seatPayload `json:"west"`
	North seatPayload `json:"north"`
}

func (r *gameRequest) seats() [models.NumSeats]models.SeatEntry {
	return [models.NumSeats]models.SeatEntry{
		{Players: r.East.Players, Score: r.East.Score},
		{Players: r.South.Players, Score: r.South.Score},
		{Players: r.West.Players, Score: r.West.Score},
		{Players: r.North.Players, Score: r.North.Score},
	}
}

// Create records a new finalized game.
func (h *GameHandler) Create(c *gin.Context) {
	var req gameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.games.Create(c.Request.Context(), req.seats())
	if err != nil {
		status := http.StatusBadRequest // validation failures are the user's
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// List returns the full game log, oldest first.
func (h *GameHandler) List(c *gin.Context) {
	records, err := h.games.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": records})
}

type updateRequest struct {
	gameRequest
	Timestamp string `json:"timestamp" binding:"required"`
}

// Update corrects an existing game in place.
func (h *GameHandler) Update(c *gin.Context) {
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.games.Update(c.Request.Context(), c.Param("id"), req.Timestamp, req.seats())
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, rec)
	}
}

// Delete removes one game from the log.
func (h *GameHandler) Delete(c *gin.Context) {
	err := h.games.Delete(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "game not found"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.Status(http.StatusNoContent)
	}
}
