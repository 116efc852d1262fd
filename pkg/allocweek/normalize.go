package allocweek

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// This file is the strict normalization tier: every function requires the
// caller to supply the tenant's WeekStartDay. Defaults live only in the
// facade (allocweek.go), so a call site that has not threaded company
// settings through fails review rather than silently bucketing on the wrong
// weekday.

// NormalizeToWeekStart maps an arbitrary instant to the canonical WeekKey of
// its containing week bucket.
func NormalizeToWeekStart(t time.Time, ws WeekStartDay) string {
	return ToDateKey(StartOfWeekUTC(t, ws.Weekday()))
}

// NormalizeKeyToWeekStart maps a date string (anything with a leading
// YYYY-MM-DD portion) to the canonical WeekKey of its containing week bucket.
// The string is interpreted as a UTC calendar date; embedded time or offset
// suffixes never shift the bucket.
func NormalizeKeyToWeekStart(key string, ws WeekStartDay) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return NormalizeToWeekStart(t, ws), nil
}

// WeekStartDate is NormalizeToWeekStart for callers that need to keep doing
// date arithmetic on the result.
func WeekStartDate(t time.Time, ws WeekStartDay) time.Time {
	return StartOfWeekUTC(t, ws.Weekday())
}

// AssertIsWeekStart recomputes the expected weekday for key and reports a
// mismatch through the logger. It is a development-time tripwire for
// upstream bugs: it never fails the running operation, and at production log
// levels the diagnostic is suppressed entirely.
func AssertIsWeekStart(key string, ws WeekStartDay, context string) {
	t, err := ParseDateKey(key)
	if err != nil {
		log.Warnf("week key assertion (%s): unparseable key %q: %v", context, key, err)
		return
	}
	if t.Weekday() != ws.Weekday() {
		log.Warnf("week key assertion (%s): %q falls on %s, expected week start %s",
			context, key, t.Weekday(), ws.Weekday())
	}
}
