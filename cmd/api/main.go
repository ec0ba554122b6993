package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"libtrack/internal/api"
	"libtrack/internal/config"
	"libtrack/internal/database"
	"libtrack/internal/repository"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("connect database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, "migrations"); err != nil {
		logger.Error("migrate database", "err", err)
		os.Exit(1)
	}
	if err := database.EnsureAdmin(context.Background(), db, cfg.API.AdminPassword); err != nil {
		logger.Error("seed admin", "err", err)
		os.Exit(1)
	}

	server := api.NewServer(
		repository.NewUserRepository(db),
		repository.NewBookRepository(db),
		repository.NewBorrowRepository(db),
		logger,
	)

	httpServer := &http.Server{
		Addr:         cfg.API.Addr,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("api server listening", "addr", cfg.API.Addr)
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
