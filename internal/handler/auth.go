// Package handler wires the HTTP API: thin gin handlers that bind JSON,
// call the service layer, and map domain errors onto status codes.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KTee1986/mahjong-tracker/internal/auth"
)

// AuthHandler issues admin session tokens.
type AuthHandler struct {
	auth *auth.PasswordAuthenticator
	jwt  *auth.JWTManager
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authenticator *auth.PasswordAuthenticator, jwt *auth.JWTManager) *AuthHandler {
	return &AuthHandler{auth: authenticator, jwt: jwt}
}

type loginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies admin credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and password are required"})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		slog.Warn("Login rejected", "name", req.Name)
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidCredentials.Error()})
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		slog.Error("Token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	slog.Info("Admin logged in", "name", user.Name)
	c.JSON(http.StatusOK, gin.H{"token": token, "name": user.Name})
}
