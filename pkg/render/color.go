package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Default line colors, matplotlib's first two cycle entries
const (
	DefaultObservedColor  = "#1f77b4"
	DefaultPredictedColor = "#d62728"
)

// ParseHexColor parses "#rrggbb" (or "rrggbb") into an opaque color
func ParseHexColor(s string) (color.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid color %q: want #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
