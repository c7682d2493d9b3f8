package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/KTee1986/mahjong-tracker/internal/auth"
	"github.com/KTee1986/mahjong-tracker/internal/config"
	"github.com/KTee1986/mahjong-tracker/internal/handler"
	"github.com/KTee1986/mahjong-tracker/internal/ledger"
	"github.com/KTee1986/mahjong-tracker/internal/middleware"
	"github.com/KTee1986/mahjong-tracker/internal/service"
	"github.com/KTee1986/mahjong-tracker/internal/storage/sqlite"
	"github.com/KTee1986/mahjong-tracker/pkg/logging"
)

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config.yaml)")
	bootstrapAdmin := flag.String("bootstrap-admin", "", "create an admin account as name:password and exit")
	flag.Parse()

	logging.Setup()
	cfg := config.Load(*configFile)

	if cfg.Auth.JWTSecret == "" {
		slog.Error("JWT_SECRET must be configured")
		os.Exit(1)
	}

	store, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DB.Path)

	authenticator := auth.NewPasswordAuthenticator(store)

	if *bootstrapAdmin != "" {
		bootstrap(authenticator, *bootstrapAdmin)
		return
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenHours)*time.Hour)
	ledgerClient := ledger.New(cfg.Ledger.BaseURL)

	gameSvc := service.NewGameService(store)
	settleSvc := service.NewSettleService(store, ledgerClient, service.LedgerConfig{
		GroupID:  cfg.Ledger.GroupID,
		Username: cfg.Ledger.Username,
		Password: cfg.Ledger.Password,
	})

	authH := handler.NewAuthHandler(authenticator, jwtManager)
	gamesH := handler.NewGameHandler(gameSvc)
	standingsH := handler.NewStandingsHandler(gameSvc)
	settleH := handler.NewSettleHandler(settleSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/api/login", authH.Login)

	api := r.Group("/api", middleware.RequireAuth(jwtManager))
	api.GET("/games", gamesH.List)
	api.POST("/games", gamesH.Create)
	api.PUT("/games/:id", gamesH.Update)
	api.DELETE("/games/:id", gamesH.Delete)
	api.POST("/games/:id/settle", settleH.SettleGame)
	api.GET("/standings", standingsH.Overview)
	api.GET("/standings/:name", standingsH.Player)
	api.GET("/debts", settleH.Debts)

	slog.Info("Server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// bootstrap creates an initial admin account from a "name:password" pair.
func bootstrap(authenticator *auth.PasswordAuthenticator, creds string) {
	name, password, ok := strings.Cut(creds, ":")
	if !ok || name == "" || password == "" {
		slog.Error("bootstrap-admin expects name:password")
		os.Exit(1)
	}
	user, err := authenticator.Register(context.Background(), name, password)
	if err != nil {
		slog.Error("Failed to create admin", "error", err)
		os.Exit(1)
	}
	slog.Info("Admin created", "name", user.Name, "id", user.ID)
}
