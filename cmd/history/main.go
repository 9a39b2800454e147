// Command history prints the recorded trade history for a symbol together
// with a win/loss summary.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	appconfig "github.com/Alias1177/SwingTrader/internal/config"
	"github.com/Alias1177/SwingTrader/internal/database"
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

	trades, err := db.ListTrades(context.Background(), cfg.Symbol)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load trade history")
	}

	if len(trades) == 0 {
		fmt.Printf("No trades recorded for %s\n", cfg.Symbol)
		os.Exit(0)
	}

	fmt.Printf("Trade history for %s\n\n", cfg.Symbol)

	var closed, wins int
	var netResult float64
	for _, trade := range trades {
		line := fmt.Sprintf("%s  %-4s %.2f @ %.5f  sl %.5f",
			trade.OpenTime.Format(time.RFC3339), trade.Side, trade.Volume, trade.EntryPrice, trade.StopLoss)

		if trade.ExitPrice != nil && trade.Result != nil {
			closed++
			if *trade.Result > 0 {
				wins++
			}
			netResult += *trade.Result
			line += fmt.Sprintf("  -> exit %.5f  result %+.5f", *trade.ExitPrice, *trade.Result)
		} else {
			line += "  (open)"
		}
		fmt.Println(line)
	}

	fmt.Printf("\nTotal trades: %d\n", len(trades))
	fmt.Printf("Closed: %d\n", closed)
	if closed > 0 {
		fmt.Printf("Wins: %d (%.2f%%)\n", wins, float64(wins)/float64(closed)*100)
	}
	fmt.Printf("Net result: %+.5f\n", netResult)
}
