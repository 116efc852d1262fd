package allocweek

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDateKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{"plain utc date", time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), "2026-01-07"},
		{"late in the utc day", time.Date(2026, 1, 7, 23, 59, 59, 0, time.UTC), "2026-01-07"},
		{"single digit month and day are padded", time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC), "2026-03-04"},
		{
			"non-utc zone uses utc calendar fields",
			time.Date(2026, 1, 7, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600)), // 2026-01-08 04:30 UTC
			"2026-01-08",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToDateKey(tt.in))
		})
	}
}

func TestParseDateKey(t *testing.T) {
	t.Run("parses as utc midnight", func(t *testing.T) {
		got, err := ParseDateKey("2026-01-07")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("ignores trailing time and offset", func(t *testing.T) {
		got, err := ParseDateKey("2026-01-07T22:00:00+11:00")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("rejects malformed keys", func(t *testing.T) {
		for _, key := range []string{"", "2026", "07-01-2026", "2026-13-40", "not-a-date"} {
			_, err := ParseDateKey(key)
			assert.Error(t, err, "key %q", key)
		}
	})

	t.Run("round trip preserves the utc calendar day", func(t *testing.T) {
		dates := []time.Time{
			time.Date(2024, 2, 29, 10, 0, 0, 0, time.UTC),
			time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 1, 1, 0, 0, 0, 0, time.FixedZone("UTC+14", 14*3600)),
			time.Date(1999, 7, 15, 4, 30, 0, 0, time.FixedZone("UTC-12", -12*3600)),
		}
		for _, d := range dates {
			key := ToDateKey(d)
			parsed, err := ParseDateKey(key)
			require.NoError(t, err)
			assert.Equal(t, key, ToDateKey(parsed))
			u := d.UTC()
			assert.Equal(t, u.Year(), parsed.Year())
			assert.Equal(t, u.Month(), parsed.Month())
			assert.Equal(t, u.Day(), parsed.Day())
		}
	})
}

func TestStartOfWeekUTC(t *testing.T) {
	// 2026-01-07 is a Wednesday.
	wednesday := time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		in        time.Time
		weekStart time.Weekday
		want      time.Time
	}{
		{"wednesday back to monday", wednesday, time.Monday, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{"wednesday back to sunday", wednesday, time.Sunday, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)},
		{"wednesday back to saturday", wednesday, time.Saturday, time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)},
		{"week start day maps to itself", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), time.Monday, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)},
		{
			"anchors before reading the weekday",
			time.Date(2026, 1, 4, 23, 59, 59, 0, time.FixedZone("UTC-2", -2*3600)), // 2026-01-05 01:59 UTC, a Monday
			time.Monday,
			time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{"crosses a month boundary", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Monday, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)},
		{"crosses a year boundary", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Monday, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StartOfWeekUTC(tt.in, tt.weekStart))
		})
	}
}
