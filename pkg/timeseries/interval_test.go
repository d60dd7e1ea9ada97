package timeseries

import (
	"testing"
	"time"
)

func TestParseInterval(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"30s", 30 * time.Second},
		{"1min", time.Minute},
		{"5min", 5 * time.Minute},
		{"5m", 5 * time.Minute},
		{"90s", 90 * time.Second},
		{"2h", 2 * time.Hour},
		{"1d", 24 * time.Hour},
		{"min", time.Minute},
		{" 5MIN ", 5 * time.Minute},
		{"1h30m", 90 * time.Minute},
	}

	for _, c := range cases {
		got, err := ParseInterval(c.in)
		if err != nil {
			t.Fatalf("ParseInterval(%q) failed: %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ParseInterval(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseIntervalInvalid(t *testing.T) {
	for _, in := range []string{"", "abc", "5parsecs", "-5min", "0s"} {
		if _, err := ParseInterval(in); err == nil {
			t.Errorf("ParseInterval(%q) should fail", in)
		}
	}
}
