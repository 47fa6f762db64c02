package descriptor

import (
	"fmt"
	"strings"
	"time"

	"github.com/eput-protocol/eputgen-go/pkg/property"
)

// Descriptor time formats. Timestamps are UTC with an optional
// fractional second; zoned values carry an explicit numeric offset.
const (
	timestampLayout  = "2006-01-02T15:04:05Z"
	zonedLayout      = "2006-01-02T15:04:05-0700"
	zonedLayoutColon = "2006-01-02T15:04:05-07:00"
	clockLayout      = "15:04:05"
	rangeSeparator   = ";"
)

func parseTimestamp(s string) (*time.Time, error) {
	t, err := time.Parse(timestampLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return &t, nil
}

func parseZonedTimestamp(s string) (*time.Time, error) {
	t, err := time.Parse(zonedLayout, s)
	if err != nil {
		if t, err = time.Parse(zonedLayoutColon, s); err != nil {
			return nil, fmt.Errorf("invalid zoned timestamp %q: %w", s, err)
		}
	}
	return &t, nil
}

func parseClock(s string) (*property.ClockValue, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return &property.ClockValue{
		Hour:   uint8(t.Hour()),
		Minute: uint8(t.Minute()),
		Second: uint8(t.Second()),
	}, nil
}

// splitRange splits a "from;to" range default.
func splitRange(s string) (string, string, error) {
	parts := strings.SplitN(s, rangeSeparator, 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid range %q: expected \"from;to\"", s)
	}
	return parts[0], parts[1], nil
}
