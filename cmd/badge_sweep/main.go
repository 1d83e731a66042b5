package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/pushp314/tradeacademy-backend/internal/app"
	"github.com/pushp314/tradeacademy-backend/internal/config"
	"github.com/pushp314/tradeacademy-backend/pkg/logger"
)

// badge_sweep re-evaluates every learner's progress once and prints the
// report as JSON. It exits 1 when any row failed so schedulers can alert.
func main() {
	envFile := flag.String("env", ".env", "path to the .env file")
	flag.Parse()

	cfg, err := config.LoadConfig(*envFile)
	logger.Init(os.Getenv("GO_ENV"))
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialise application")
	}
	defer a.Close()

	report, runErr := a.Services.Sweeper.Run(ctx)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)

	if runErr != nil || report.Failed() {
		a.Close()
		os.Exit(1)
	}
}
