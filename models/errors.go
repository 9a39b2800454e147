package models

import "errors"

var (
	// ErrNoData indicates a missing or empty candle series.
	ErrNoData = errors.New("no candle data")

	// ErrVenueUnavailable indicates a failed quote, account or position
	// query. Trading actions are skipped for the tick and retried on the
	// next one.
	ErrVenueUnavailable = errors.New("execution venue unavailable")

	// ErrOrderRejected indicates the venue declined an order submission.
	ErrOrderRejected = errors.New("order rejected by venue")
)
