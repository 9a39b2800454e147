package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/SwingTrader/internal/api/twelvedata"
	appconfig "github.com/Alias1177/SwingTrader/internal/config"
	"github.com/Alias1177/SwingTrader/internal/controller"
	"github.com/Alias1177/SwingTrader/internal/database"
	"github.com/Alias1177/SwingTrader/internal/notify"
	"github.com/Alias1177/SwingTrader/internal/risk"
	"github.com/Alias1177/SwingTrader/internal/runner"
	"github.com/Alias1177/SwingTrader/internal/venue"
	"github.com/Alias1177/SwingTrader/models"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
}

func main() {
	cfg, err := appconfig.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	log.Info().
		Str("symbol", cfg.Symbol).
		Str("fast", cfg.FastTimeframe).
		Strs("slow", cfg.SlowTimeframes).
		Dur("tick_interval", cfg.TickInterval).
		Msg("Starting swing trader")

	candleClient := twelvedata.NewClient(twelvedata.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		CandleCount:    cfg.CandleCount,
		RequestTimeout: cfg.RequestTimeout,
	})

	venueClient := venue.NewClient(venue.ClientOptions{
		APIKey:         cfg.VenueAPIKey,
		BaseURL:        cfg.VenueBaseURL,
		RequestTimeout: cfg.RequestTimeout,
	})

	db, err := database.New(database.ConnectionParams{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	var notifier models.Notifier
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		notifier, err = notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize Telegram bot")
		}
	} else {
		log.Warn().Msg("Telegram not configured, alignment alerts disabled")
		notifier = notify.NopNotifier{}
	}

	governor := &risk.Governor{
		DailyDrawdownPct:   cfg.DailyDrawdownPct,
		OverallDrawdownPct: cfg.OverallDrawdownPct,
		MaxTradesPerDay:    cfg.MaxTradesPerDay,
		RiskPercent:        cfg.RiskPercent,
		MinVolumeUnit:      cfg.MinVolumeUnit,
		VolumePrecision:    cfg.VolumePrecision,
	}
	if err := governor.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid risk parameters")
	}

	ctrl := controller.New(controller.Options{
		Symbol:           cfg.Symbol,
		Venue:            venueClient,
		Store:            db,
		Notifier:         notifier,
		Governor:         governor,
		ResultMultiplier: cfg.ResultMultiplier,
	})

	run := runner.New(runner.Options{
		Source:         candleClient,
		Controller:     ctrl,
		Symbol:         cfg.Symbol,
		FastTimeframe:  cfg.FastTimeframe,
		SlowTimeframes: cfg.SlowTimeframes,
		Interval:       cfg.TickInterval,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	run.Run(ctx)
	log.Info().Msg("Shutdown complete")
}
