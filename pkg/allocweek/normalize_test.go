package allocweek

import (
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekStartDay(t *testing.T) {
	tests := []struct {
		in      string
		want    WeekStartDay
		wantErr bool
	}{
		{"monday", WeekStartMonday, false},
		{"Sunday", WeekStartSunday, false},
		{" SATURDAY ", WeekStartSaturday, false},
		{"tuesday", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseWeekStartDay(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
		} else {
			require.NoError(t, err, "input %q", tt.in)
			assert.Equal(t, tt.want, got)
		}
	}
}

func TestWeekStartDayWeekday(t *testing.T) {
	assert.Equal(t, time.Sunday, WeekStartSunday.Weekday())
	assert.Equal(t, time.Monday, WeekStartMonday.Weekday())
	assert.Equal(t, time.Saturday, WeekStartSaturday.Weekday())
}

func TestNormalizeToWeekStart(t *testing.T) {
	wednesday := time.Date(2026, 1, 7, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   time.Time
		ws   WeekStartDay
		want string
	}{
		{"monday start", wednesday, WeekStartMonday, "2026-01-05"},
		{"sunday start", wednesday, WeekStartSunday, "2026-01-04"},
		{"saturday start", wednesday, WeekStartSaturday, "2026-01-03"},
		{"already a week start", time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), WeekStartMonday, "2026-01-05"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeToWeekStart(tt.in, tt.ws))
		})
	}

	t.Run("same utc day in different zones buckets identically", func(t *testing.T) {
		zones := []*time.Location{
			time.UTC,
			time.FixedZone("UTC+13", 13*3600),
			time.FixedZone("UTC-11", -11*3600),
		}
		for _, ws := range []WeekStartDay{WeekStartSunday, WeekStartMonday, WeekStartSaturday} {
			var keys []string
			for _, zone := range zones {
				// All three are 2026-01-07 14:00 UTC expressed in different zones.
				instant := time.Date(2026, 1, 7, 14, 0, 0, 0, time.UTC).In(zone)
				keys = append(keys, NormalizeToWeekStart(instant, ws))
			}
			assert.Equal(t, keys[0], keys[1], "week start %s", ws)
			assert.Equal(t, keys[0], keys[2], "week start %s", ws)
		}
	})

	t.Run("normalizing a normalized key is a fixed point", func(t *testing.T) {
		for _, ws := range []WeekStartDay{WeekStartSunday, WeekStartMonday, WeekStartSaturday} {
			key := NormalizeToWeekStart(time.Date(2026, 4, 16, 9, 0, 0, 0, time.UTC), ws)
			again, err := NormalizeKeyToWeekStart(key, ws)
			require.NoError(t, err)
			assert.Equal(t, key, again)
		}
	})
}

func TestNormalizeKeyToWeekStart(t *testing.T) {
	t.Run("normalizes a plain date key", func(t *testing.T) {
		got, err := NormalizeKeyToWeekStart("2026-01-07", WeekStartMonday)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", got)
	})

	t.Run("interprets an offset-bearing string by its leading date", func(t *testing.T) {
		// The +11:00 suffix must not shift the bucket.
		got, err := NormalizeKeyToWeekStart("2026-01-07T22:00:00+11:00", WeekStartMonday)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", got)
	})

	t.Run("propagates parse errors", func(t *testing.T) {
		_, err := NormalizeKeyToWeekStart("garbage", WeekStartMonday)
		assert.Error(t, err)
	})
}

func TestWeekStartDate(t *testing.T) {
	got := WeekStartDate(time.Date(2026, 1, 7, 18, 0, 0, 0, time.UTC), WeekStartSunday)
	assert.Equal(t, time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestAssertIsWeekStart(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	prevLevel := log.GetLevel()
	log.SetLevel(log.WarnLevel)
	defer log.SetLevel(prevLevel)

	t.Run("silent for a correct week start", func(t *testing.T) {
		hook.Reset()
		AssertIsWeekStart("2026-01-05", WeekStartMonday, "test")
		assert.Empty(t, hook.Entries)
	})

	t.Run("warns with context on a mismatched key", func(t *testing.T) {
		hook.Reset()
		AssertIsWeekStart("2026-01-07", WeekStartMonday, "save path")
		require.Len(t, hook.Entries, 1)
		assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
		assert.Contains(t, hook.LastEntry().Message, "save path")
		assert.Contains(t, hook.LastEntry().Message, "2026-01-07")
	})

	t.Run("warns on an unparseable key without failing", func(t *testing.T) {
		hook.Reset()
		AssertIsWeekStart("not-a-key", WeekStartMonday, "test")
		require.Len(t, hook.Entries, 1)
		assert.Equal(t, log.WarnLevel, hook.LastEntry().Level)
	})
}
