package allocweek

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekKeyFor(t *testing.T) {
	wednesday := time.Date(2026, 1, 7, 12, 0, 0, 0, time.UTC)

	t.Run("uses the supplied week start", func(t *testing.T) {
		assert.Equal(t, "2026-01-04", WeekKeyFor(wednesday, WeekStartSunday))
		assert.Equal(t, "2026-01-03", WeekKeyFor(wednesday, WeekStartSaturday))
	})

	t.Run("zero value falls back to monday", func(t *testing.T) {
		assert.Equal(t, "2026-01-05", WeekKeyFor(wednesday, ""))
	})

	t.Run("result always lands on the configured weekday within six days", func(t *testing.T) {
		starts := map[WeekStartDay]time.Weekday{
			WeekStartSunday:   time.Sunday,
			WeekStartMonday:   time.Monday,
			WeekStartSaturday: time.Saturday,
		}
		for d := 0; d < 21; d++ {
			date := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC).AddDate(0, 0, d)
			for ws, wd := range starts {
				key := WeekKeyFor(date, ws)
				parsed, err := ParseDateKey(key)
				require.NoError(t, err)
				assert.Equal(t, wd, parsed.Weekday())
				assert.LessOrEqual(t, key, ToDateKey(date))
				assert.LessOrEqual(t, ToDateKey(date), ToDateKey(parsed.AddDate(0, 0, 6)))
			}
		}
	})
}

func TestWeekKeyForInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ws    WeekStartDay
		want  string
	}{
		{"wednesday to preceding monday", "2026-01-07", WeekStartMonday, "2026-01-05"},
		{"wednesday to preceding sunday", "2026-01-07", WeekStartSunday, "2026-01-04"},
		{"wednesday to preceding saturday", "2026-01-07", WeekStartSaturday, "2026-01-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WeekKeyForInput(tt.input, tt.ws)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("propagates malformed input", func(t *testing.T) {
		_, err := WeekKeyForInput("2026/01/07", WeekStartMonday)
		assert.Error(t, err)
	})
}

func TestCurrentWeekKey(t *testing.T) {
	key := CurrentWeekKey(WeekStartMonday)
	parsed, err := ParseDateKey(key)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, parsed.Weekday())
	assert.Equal(t, key, NormalizeToWeekStart(time.Now(), WeekStartMonday))
}

func TestWeekRange(t *testing.T) {
	start, end := WeekRange("2026-01-05")
	assert.Equal(t, "2026-01-05", start)
	assert.Equal(t, "2026-01-11", end)

	t.Run("spans month and year boundaries", func(t *testing.T) {
		start, end := WeekRange("2025-12-29")
		assert.Equal(t, "2025-12-29", start)
		assert.Equal(t, "2026-01-04", end)
	})
}

func TestWeekKeysForPeriod(t *testing.T) {
	t.Run("normalizes the start and spaces keys seven days apart", func(t *testing.T) {
		keys, err := WeekKeysForPeriod("2026-01-07", 2, WeekStartMonday)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-05", "2026-01-12"}, keys)
	})

	t.Run("returns exactly n strictly increasing keys", func(t *testing.T) {
		keys, err := WeekKeysForPeriod("2026-01-07", 12, WeekStartMonday)
		require.NoError(t, err)
		require.Len(t, keys, 12)
		for i := 1; i < len(keys); i++ {
			prev, err := ParseDateKey(keys[i-1])
			require.NoError(t, err)
			assert.Equal(t, ToDateKey(prev.AddDate(0, 0, 7)), keys[i])
			assert.Equal(t, -1, CompareWeekKeys(keys[i-1], keys[i]))
		}
	})

	t.Run("zero or negative count yields an empty slice", func(t *testing.T) {
		keys, err := WeekKeysForPeriod("2026-01-07", 0, WeekStartMonday)
		require.NoError(t, err)
		assert.Empty(t, keys)

		keys, err = WeekKeysForPeriod("2026-01-07", -3, WeekStartMonday)
		require.NoError(t, err)
		assert.Empty(t, keys)
	})
}

func TestQueryRange(t *testing.T) {
	t.Run("covers exactly periodWeeks buckets", func(t *testing.T) {
		start, end, err := QueryRange("2026-01-07", 12, WeekStartMonday)
		require.NoError(t, err)
		assert.Equal(t, "2026-01-05", start)
		assert.Equal(t, "2026-03-23", end) // 11 weeks after the start
	})

	t.Run("single week period collapses to one key", func(t *testing.T) {
		start, end, err := QueryRange("2026-01-07", 1, WeekStartMonday)
		require.NoError(t, err)
		assert.Equal(t, start, end)
	})
}

func TestQueryRangeSymmetric(t *testing.T) {
	start, end, err := QueryRangeSymmetric("2026-01-07", 2, 3, WeekStartMonday)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-22", start)
	assert.Equal(t, "2026-01-26", end)

	t.Run("zero forward keeps the reference as the end", func(t *testing.T) {
		start, end, err := QueryRangeSymmetric("2026-01-07", 4, 0, WeekStartMonday)
		require.NoError(t, err)
		assert.Equal(t, "2025-12-08", start)
		assert.Equal(t, "2026-01-05", end)
	})
}

func TestCompareWeekKeys(t *testing.T) {
	assert.Equal(t, -1, CompareWeekKeys("2026-01-05", "2026-01-12"))
	assert.Equal(t, 1, CompareWeekKeys("2026-01-12", "2026-01-05"))
	assert.Equal(t, 0, CompareWeekKeys("2026-01-05", "2026-01-05"))

	t.Run("lexical order matches chronological order across boundaries", func(t *testing.T) {
		assert.Equal(t, -1, CompareWeekKeys("2025-12-29", "2026-01-05"))
		assert.Equal(t, -1, CompareWeekKeys("2026-09-28", "2026-10-05"))
	})
}

func TestWeekKeyInRange(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"2026-01-05", true},  // start bound is inclusive
		{"2026-03-23", true},  // end bound is inclusive
		{"2026-02-09", true},  // interior
		{"2025-12-29", false}, // before
		{"2026-03-30", false}, // after
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekKeyInRange(tt.key, "2026-01-05", "2026-03-23"), "key %s", tt.key)
	}
}

func TestIsValidWeekKey(t *testing.T) {
	assert.True(t, IsValidWeekKey("2026-01-05", WeekStartMonday))
	assert.False(t, IsValidWeekKey("2026-01-07", WeekStartMonday))
	assert.True(t, IsValidWeekKey("2026-01-04", WeekStartSunday))
	assert.True(t, IsValidWeekKey("2026-01-03", WeekStartSaturday))
	assert.False(t, IsValidWeekKey("not-a-key", WeekStartMonday))
	assert.False(t, IsValidWeekKey("2026-01-05T00:00:00Z", WeekStartMonday), "non-canonical form")
}
