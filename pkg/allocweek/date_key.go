package allocweek

import (
	"fmt"
	"time"
)

// dateKeyLayout is the canonical YYYY-MM-DD form used for both persisted
// allocation dates and client-facing week keys. Keys in this form sort
// lexically in chronological order, which the comparison and range helpers
// rely on.
const dateKeyLayout = "2006-01-02"

// ToDateKey formats t as a canonical YYYY-MM-DD key using its UTC calendar
// fields only. Two instants on the same UTC day always produce the same key,
// regardless of the wall-clock zone they were created in.
func ToDateKey(t time.Time) string {
	return t.UTC().Format(dateKeyLayout)
}

// ParseDateKey parses the leading YYYY-MM-DD portion of key as UTC midnight
// of that calendar day. Any trailing time-of-day or offset suffix is ignored
// rather than reinterpreted in local time, so keys produced by clients in
// other zones normalize identically. ParseDateKey is the exact inverse of
// ToDateKey: ToDateKey(ParseDateKey(k)) == k for every well-formed key.
func ParseDateKey(key string) (time.Time, error) {
	if len(key) < len(dateKeyLayout) {
		return time.Time{}, fmt.Errorf("malformed date key %q: want YYYY-MM-DD", key)
	}
	t, err := time.ParseInLocation(dateKeyLayout, key[:len(dateKeyLayout)], time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date key %q: %w", key, err)
	}
	return t, nil
}

// StartOfWeekUTC returns UTC midnight of the week bucket containing t, for a
// week beginning on weekStart. The input is anchored to UTC midnight before
// the weekday is read; computing the weekday first risks an off-by-one near
// day boundaries when t carries a late-in-day wall clock.
func StartOfWeekUTC(t time.Time, weekStart time.Weekday) time.Time {
	u := t.UTC()
	anchored := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	delta := (int(anchored.Weekday()) - int(weekStart) + 7) % 7
	return anchored.AddDate(0, 0, -delta)
}
