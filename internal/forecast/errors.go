package forecast

import "errors"

var (
	// ErrEmptyInput means no transactions were supplied; there is nothing to
	// aggregate and no downstream step may run.
	ErrEmptyInput = errors.New("no transactions supplied")

	// ErrForecastUnavailable means both forecasting strategies failed.
	ErrForecastUnavailable = errors.New("forecast generation failed")

	// ErrInsufficientHistory means the stress test was given an empty
	// historical series.
	ErrInsufficientHistory = errors.New("stress test requires at least one day of history")

	// ErrNoForecast means the liquidity check was given an empty forecast.
	ErrNoForecast = errors.New("liquidity check requires a non-empty forecast")
)
