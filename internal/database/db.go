package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Alias1177/SwingTrader/models"
)

// DB represents a database connection
type DB struct {
	*sql.DB
}

// ConnectionParams holds PostgreSQL connection parameters
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// New creates a new database connection
func New(params ConnectionParams) (*DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return &DB{db}, nil
}

// createTables creates the necessary tables if they don't exist
func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id SERIAL PRIMARY KEY,
			symbol TEXT NOT NULL,
			side TEXT NOT NULL,
			volume DOUBLE PRECISION NOT NULL,
			entry_price DOUBLE PRECISION NOT NULL,
			stop_loss DOUBLE PRECISION NOT NULL,
			ref_open DOUBLE PRECISION NOT NULL,
			open_time TIMESTAMP NOT NULL,
			exit_price DOUBLE PRECISION,
			close_time TIMESTAMP,
			result DOUBLE PRECISION
		)
	`)

	return err
}

// RecordTradeOpen inserts a new open trade record.
func (db *DB) RecordTradeOpen(ctx context.Context, record models.TradeRecord) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO trades (
			symbol, side, volume, entry_price, stop_loss, ref_open, open_time
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		record.Symbol, record.Side, record.Volume, record.EntryPrice,
		record.StopLoss, record.RefOpen, record.OpenTime)

	if err != nil {
		return fmt.Errorf("inserting trade: %w", err)
	}
	return nil
}

// RecordTradeClose fills the exit fields of the most recent open record for
// the symbol and side.
func (db *DB) RecordTradeClose(ctx context.Context, symbol string, side models.Side, exitPrice float64, result float64) error {
	res, err := db.ExecContext(ctx, `
		UPDATE trades
		SET exit_price = $1, close_time = NOW(), result = $2
		WHERE id = (
			SELECT id FROM trades
			WHERE symbol = $3 AND side = $4 AND close_time IS NULL
			ORDER BY open_time DESC
			LIMIT 1
		)
	`, exitPrice, result, symbol, side)

	if err != nil {
		return fmt.Errorf("closing trade: %w", err)
	}

	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return fmt.Errorf("no open trade record for %s %s", symbol, side)
	}
	return nil
}

// ListTrades returns all trade records for a symbol, oldest first.
func (db *DB) ListTrades(ctx context.Context, symbol string) ([]models.TradeRecord, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT symbol, side, volume, entry_price, stop_loss, ref_open,
			open_time, exit_price, close_time, result
		FROM trades
		WHERE symbol = $1
		ORDER BY open_time ASC
	`, symbol)
	if err != nil {
		return nil, fmt.Errorf("querying trades: %w", err)
	}
	defer rows.Close()

	var trades []models.TradeRecord
	for rows.Next() {
		var record models.TradeRecord
		var exitPrice sql.NullFloat64
		var closeTime sql.NullTime
		var result sql.NullFloat64

		if err := rows.Scan(
			&record.Symbol, &record.Side, &record.Volume, &record.EntryPrice,
			&record.StopLoss, &record.RefOpen, &record.OpenTime,
			&exitPrice, &closeTime, &result,
		); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}

		if exitPrice.Valid {
			record.ExitPrice = &exitPrice.Float64
		}
		if closeTime.Valid {
			t := closeTime.Time
			record.CloseTime = &t
		}
		if result.Valid {
			record.Result = &result.Float64
		}
		trades = append(trades, record)
	}

	return trades, rows.Err()
}
