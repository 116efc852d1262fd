// Package allocweek defines the canonical mapping from any point in time to
// the week bucket that owns it. Every component that reads, writes, caches,
// or subscribes to per-week allocation data must derive its key through this
// package so that independently rendered views of the same week always
// address the same underlying record.
//
// A WeekKey is a YYYY-MM-DD string naming UTC midnight of the bucket's first
// day; the bucket spans that day plus the six following days, inclusive.
package allocweek

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// WeekKeyFor returns the WeekKey for the bucket containing t. A zero or
// invalid ws falls back to DefaultWeekStartDay; this convenience is for call
// sites that have not threaded company settings through, and exists only at
// this facade tier.
func WeekKeyFor(t time.Time, ws WeekStartDay) string {
	return NormalizeToWeekStart(t, ws.OrDefault())
}

// WeekKeyForInput is WeekKeyFor over a date string (any value with a leading
// YYYY-MM-DD portion).
func WeekKeyForInput(input string, ws WeekStartDay) (string, error) {
	return NormalizeKeyToWeekStart(input, ws.OrDefault())
}

// CurrentWeekKey returns the WeekKey of the bucket containing the current
// instant. Services that need a testable clock should call WeekKeyFor with
// their own now.
func CurrentWeekKey(ws WeekStartDay) string {
	return WeekKeyFor(time.Now(), ws)
}

// WeekRange expands a WeekKey into its inclusive seven-day span. The input
// must already be a normalized week start; the function does not re-normalize
// and garbage in yields garbage out.
func WeekRange(weekKey string) (start, end string) {
	t, err := ParseDateKey(weekKey)
	if err != nil {
		return weekKey, weekKey
	}
	return weekKey, ToDateKey(t.AddDate(0, 0, 6))
}

// WeekKeysForPeriod normalizes input and returns weekCount consecutive
// WeekKeys spaced exactly seven days apart, the first being the normalized
// start. A zero or negative count yields an empty slice, not an error.
func WeekKeysForPeriod(input string, weekCount int, ws WeekStartDay) ([]string, error) {
	startKey, err := NormalizeKeyToWeekStart(input, ws.OrDefault())
	if err != nil {
		return nil, err
	}
	if weekCount <= 0 {
		return []string{}, nil
	}
	start, _ := ParseDateKey(startKey)
	keys := make([]string, 0, weekCount)
	for i := 0; i < weekCount; i++ {
		keys = append(keys, ToDateKey(start.AddDate(0, 0, i*7)))
	}
	return keys, nil
}

// QueryRange normalizes input to its WeekKey and returns the inclusive key
// span covering exactly periodWeeks buckets starting there. The end key is
// (periodWeeks-1)*7 days after the start, so a single-week period has
// start == end.
func QueryRange(input string, periodWeeks int, ws WeekStartDay) (startKey, endKey string, err error) {
	startKey, err = NormalizeKeyToWeekStart(input, ws.OrDefault())
	if err != nil {
		return "", "", err
	}
	start, _ := ParseDateKey(startKey)
	endKey = ToDateKey(start.AddDate(0, 0, (periodWeeks-1)*7))
	return startKey, endKey, nil
}

// QueryRangeSymmetric normalizes input and returns the key span reaching
// weeksBack buckets before and weeksForward buckets after the reference
// bucket, for centered or backward-looking views.
func QueryRangeSymmetric(input string, weeksBack, weeksForward int, ws WeekStartDay) (startKey, endKey string, err error) {
	refKey, err := NormalizeKeyToWeekStart(input, ws.OrDefault())
	if err != nil {
		return "", "", err
	}
	ref, _ := ParseDateKey(refKey)
	startKey = ToDateKey(ref.AddDate(0, 0, -weeksBack*7))
	endKey = ToDateKey(ref.AddDate(0, 0, weeksForward*7))
	return startKey, endKey, nil
}

// CompareWeekKeys orders two keys, returning -1, 0, or 1. Plain string
// comparison is correct because the canonical key form sorts chronologically.
func CompareWeekKeys(a, b string) int {
	return strings.Compare(a, b)
}

// WeekKeyInRange reports whether key lies within [start, end], inclusive on
// both bounds.
func WeekKeyInRange(key, start, end string) bool {
	return CompareWeekKeys(key, start) >= 0 && CompareWeekKeys(key, end) <= 0
}

// IsValidWeekKey reports whether key is a well-formed date key falling on the
// week start configured by ws. Unlike AssertIsWeekStart it is queryable; it
// still emits a debug diagnostic on failure so misbucketed keys surface in
// development logs.
func IsValidWeekKey(key string, ws WeekStartDay) bool {
	t, err := ParseDateKey(key)
	if err != nil {
		log.Debugf("invalid week key %q: %v", key, err)
		return false
	}
	if ToDateKey(t) != key {
		log.Debugf("invalid week key %q: not in canonical form", key)
		return false
	}
	if t.Weekday() != ws.OrDefault().Weekday() {
		log.Debugf("invalid week key %q: falls on %s, week starts on %s", key, t.Weekday(), ws.OrDefault().Weekday())
		return false
	}
	return true
}
