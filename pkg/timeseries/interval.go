package timeseries

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// ParseInterval parses a resample interval string. Both Go duration syntax
// ("5m", "30s", "1h30m") and the pandas-style offset aliases that pmrep
// users are used to ("1min", "5min", "30s", "2h", "1d") are accepted.
func ParseInterval(s string) (time.Duration, error) {
	raw := strings.TrimSpace(strings.ToLower(s))
	if raw == "" {
		return 0, fmt.Errorf("%w: empty string", ErrBadInterval)
	}

	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q is not positive", ErrBadInterval, s)
		}
		return d, nil
	}

	// Split into an optional leading number and a unit alias.
	i := 0
	for i < len(raw) && (unicode.IsDigit(rune(raw[i])) || raw[i] == '.') {
		i++
	}
	numPart, unitPart := raw[:i], strings.TrimSpace(raw[i:])

	n := 1.0
	if numPart != "" {
		var err error
		n, err = strconv.ParseFloat(numPart, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadInterval, s)
		}
	}

	var unit time.Duration
	switch unitPart {
	case "s", "sec", "secs", "second", "seconds":
		unit = time.Second
	case "min", "mins", "minute", "minutes":
		unit = time.Minute
	case "h", "hr", "hrs", "hour", "hours":
		unit = time.Hour
	case "d", "day", "days":
		unit = 24 * time.Hour
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadInterval, s)
	}

	d := time.Duration(n * float64(unit))
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q is not positive", ErrBadInterval, s)
	}
	return d, nil
}
