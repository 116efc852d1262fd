package allocweek

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// WeekStartDay is the company-level choice of which weekday begins each
// allocation week. It is threaded explicitly into every normalization call;
// only the convenience tier of this package may fall back to the default.
type WeekStartDay string

const (
	WeekStartSunday   WeekStartDay = "sunday"
	WeekStartMonday   WeekStartDay = "monday"
	WeekStartSaturday WeekStartDay = "saturday"
)

// DefaultWeekStartDay is used by the convenience tier when a caller has not
// threaded company settings through yet.
const DefaultWeekStartDay = WeekStartMonday

// ParseWeekStartDay converts a stored or user-supplied value into a
// WeekStartDay. Matching is case-insensitive.
func ParseWeekStartDay(s string) (WeekStartDay, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sunday":
		return WeekStartSunday, nil
	case "monday":
		return WeekStartMonday, nil
	case "saturday":
		return WeekStartSaturday, nil
	default:
		return "", fmt.Errorf("unsupported week start day: %q", s)
	}
}

// Valid reports whether w is one of the supported week start days.
func (w WeekStartDay) Valid() bool {
	switch w {
	case WeekStartSunday, WeekStartMonday, WeekStartSaturday:
		return true
	}
	return false
}

// Weekday returns the UTC weekday ordinal for w (Sunday=0, Monday=1,
// Saturday=6). Values should be validated at the configuration boundary;
// an unknown value is reported and treated as Monday so that normalization
// never halts a request.
func (w WeekStartDay) Weekday() time.Weekday {
	switch w {
	case WeekStartSunday:
		return time.Sunday
	case WeekStartMonday:
		return time.Monday
	case WeekStartSaturday:
		return time.Saturday
	default:
		log.Warnf("unknown week start day %q, falling back to Monday", string(w))
		return time.Monday
	}
}

// OrDefault returns w when it is a valid week start day and
// DefaultWeekStartDay otherwise. Only the public facade functions use this;
// the strict normalization layer requires a valid value.
func (w WeekStartDay) OrDefault() WeekStartDay {
	if w.Valid() {
		return w
	}
	return DefaultWeekStartDay
}

func (w WeekStartDay) String() string {
	return string(w)
}
