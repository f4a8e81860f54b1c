package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/tallyhq/tally/internal/config"
	tallyHttp "github.com/tallyhq/tally/internal/http"
	eventsHandler "github.com/tallyhq/tally/internal/http/events"
	reportHandler "github.com/tallyhq/tally/internal/http/report"
	txHandler "github.com/tallyhq/tally/internal/http/transaction"
	"github.com/tallyhq/tally/internal/kv/boltkv"
	"github.com/tallyhq/tally/internal/transaction"
	txStore "github.com/tallyhq/tally/internal/transaction/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	substrate, err := boltkv.Open(cfg.DB.Path)
	if err != nil {
		slog.Error("failed to open database", "error", err, "path", cfg.DB.Path)
		os.Exit(1)
	}
	defer substrate.Close()

	txService := transaction.NewService(txStore.New(substrate))

	var (
		transactionH = txHandler.NewHandler(txService)
		reportH      = reportHandler.NewHandler(txService)
		eventsH      = eventsHandler.NewHandler(txService)
	)

	router := tallyHttp.New(transactionH, reportH, eventsH, cfg.Server.AllowedOrigins)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "db", cfg.DB.Path)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
