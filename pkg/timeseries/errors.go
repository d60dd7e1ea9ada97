package timeseries

import "errors"

// Configuration and data errors surfaced by the loading/cleaning stages.
// All of them are fatal at the CLI boundary.
var (
	// ErrColumnNotFound reports a forced column name missing from the header
	ErrColumnNotFound = errors.New("column not found")

	// ErrNoNumericColumn reports that no metric column could be auto-detected
	ErrNoNumericColumn = errors.New("no numeric metric column found")

	// ErrEmptySeries reports that cleaning dropped every row
	ErrEmptySeries = errors.New("no numeric data points found after cleaning")

	// ErrTooFewPoints reports that fewer than MinFitPoints remain after resampling
	ErrTooFewPoints = errors.New("not enough points after resampling")

	// ErrBadInterval reports an unparseable resample interval string
	ErrBadInterval = errors.New("invalid resample interval")
)

// MinFitPoints is the minimum resampled series length for a trend fit.
// Below this the least-squares line is undefined or degenerate.
const MinFitPoints = 3
