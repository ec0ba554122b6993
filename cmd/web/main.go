package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"libtrack/internal/client"
	"libtrack/internal/config"
	"libtrack/internal/handler"
)

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))

	library := client.New(cfg.Web.APIBaseURL, logger)
	server := handler.NewServer(library, []byte(cfg.Web.SessionKey), logger)

	httpServer := &http.Server{
		Addr:         cfg.Web.Addr,
		Handler:      server,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("web server listening", "addr", cfg.Web.Addr, "api", cfg.Web.APIBaseURL)
	if err := httpServer.ListenAndServe(); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
