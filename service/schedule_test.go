package service

import (
	"testing"
	"time"

	"storepulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hoursFor(storeID string, entries ...[3]any) []*models.BusinessHours {
	var out []*models.BusinessHours
	for _, e := range entries {
		out = append(out, &models.BusinessHours{
			StoreID:        storeID,
			DayOfWeek:      e[0].(int),
			StartTimeLocal: e[1].(string),
			EndTimeLocal:   e[2].(string),
		})
	}
	return out
}

func TestCalculateOverlap_ContainedIntervalKeepsFullLength(t *testing.T) {
	// 2024-01-16 is a Tuesday (weekday index 1)
	hours := hoursFor("s1", [3]any{1, "09:00:00", "17:00:00"})

	start := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	periods, err := CalculateOverlap(hours, start, end)
	require.NoError(t, err)
	require.Len(t, periods, 1)
	assert.Equal(t, 480.0, periods[0].Duration)
	assert.Equal(t, time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC), periods[0].Start)
	assert.Equal(t, time.Date(2024, 1, 16, 17, 0, 0, 0, time.UTC), periods[0].End)
}

func TestCalculateOverlap_WeekdayScheduleOverDayWindow(t *testing.T) {
	// Open Mon-Fri 09:00-17:00; window is the 24h up to Wednesday 12:00
	var entries [][3]any
	for day := 0; day < 5; day++ {
		entries = append(entries, [3]any{day, "09:00:00", "17:00:00"})
	}
	hours := hoursFor("s1", entries...)

	// 2024-01-17 is a Wednesday
	end := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	start := end.Add(-24 * time.Hour)

	periods, err := CalculateOverlap(hours, start, end)
	require.NoError(t, err)
	require.Len(t, periods, 2)

	// Tuesday tail: 12:00-17:00
	assert.Equal(t, 300.0, periods[0].Duration)
	// Wednesday head: 09:00-12:00
	assert.Equal(t, 180.0, periods[1].Duration)
	assert.Equal(t, 480.0, TotalOverlapMinutes(periods))
}

func TestCalculateOverlap_WeekendOnlyStoreHasNoWeekdayOverlap(t *testing.T) {
	// Saturday only (weekday index 5)
	hours := hoursFor("s1", [3]any{5, "10:00:00", "18:00:00"})

	// Wednesday noon, one hour back
	end := time.Date(2024, 1, 17, 12, 0, 0, 0, time.UTC)
	start := end.Add(-time.Hour)

	periods, err := CalculateOverlap(hours, start, end)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestCalculateOverlap_MidnightWrap(t *testing.T) {
	// Tuesday 22:00 through Wednesday 02:00
	hours := hoursFor("s1", [3]any{1, "22:00:00", "02:00:00"})

	t.Run("window fully containing the interval", func(t *testing.T) {
		start := time.Date(2024, 1, 16, 21, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 17, 3, 0, 0, 0, time.UTC)

		periods, err := CalculateOverlap(hours, start, end)
		require.NoError(t, err)
		require.Len(t, periods, 1)
		assert.Equal(t, time.Date(2024, 1, 16, 22, 0, 0, 0, time.UTC), periods[0].Start)
		assert.Equal(t, time.Date(2024, 1, 17, 2, 0, 0, 0, time.UTC), periods[0].End)
		assert.Equal(t, 240.0, periods[0].Duration)
	})

	t.Run("window ending before midnight clips the wrap", func(t *testing.T) {
		start := time.Date(2024, 1, 16, 21, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 16, 23, 30, 0, 0, time.UTC)

		periods, err := CalculateOverlap(hours, start, end)
		require.NoError(t, err)
		require.Len(t, periods, 1)
		assert.Equal(t, 90.0, periods[0].Duration)
	})
}

func TestCalculateOverlap_WrapOnConsecutiveDays(t *testing.T) {
	// 22:00-02:00 declared on both Tuesday and Wednesday; a window spanning
	// both midnights yields one period per calendar date
	hours := hoursFor("s1",
		[3]any{1, "22:00:00", "02:00:00"},
		[3]any{2, "22:00:00", "02:00:00"},
	)

	start := time.Date(2024, 1, 16, 21, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 18, 3, 0, 0, 0, time.UTC)

	periods, err := CalculateOverlap(hours, start, end)
	require.NoError(t, err)
	require.Len(t, periods, 2)
	assert.Equal(t, 240.0, periods[0].Duration)
	assert.Equal(t, 240.0, periods[1].Duration)
	assert.Equal(t, periods[0].Start.AddDate(0, 0, 1), periods[1].Start)
}

func TestCalculateOverlap_ZeroLengthOverlapDiscarded(t *testing.T) {
	hours := hoursFor("s1", [3]any{1, "09:00:00", "17:00:00"})

	// Window ends exactly at opening time
	start := time.Date(2024, 1, 16, 8, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	periods, err := CalculateOverlap(hours, start, end)
	require.NoError(t, err)
	assert.Empty(t, periods)
}

func TestCalculateOverlap_InvalidClockFails(t *testing.T) {
	hours := hoursFor("s1", [3]any{1, "25:00:00", "17:00:00"})

	start := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 17, 0, 0, 0, 0, time.UTC)

	_, err := CalculateOverlap(hours, start, end)
	assert.Error(t, err)
}

func TestCalculateOverlap_Idempotent(t *testing.T) {
	hours := hoursFor("s1",
		[3]any{1, "09:00:00", "17:00:00"},
		[3]any{2, "22:00:00", "02:00:00"},
	)
	start := time.Date(2024, 1, 15, 6, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 19, 23, 15, 0, 0, time.UTC)

	first, err := CalculateOverlap(hours, start, end)
	require.NoError(t, err)
	second, err := CalculateOverlap(hours, start, end)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestIsAlwaysOpen(t *testing.T) {
	t.Run("default weekly hours", func(t *testing.T) {
		assert.True(t, IsAlwaysOpen(models.DefaultWeeklyHours("s1")))
	})

	t.Run("explicit full-day declaration matches the default", func(t *testing.T) {
		var entries [][3]any
		for day := 0; day < 7; day++ {
			entries = append(entries, [3]any{day, "00:00:00", "23:59:59"})
		}
		assert.True(t, IsAlwaysOpen(hoursFor("s1", entries...)))
	})

	t.Run("one minute short of full day is not always open", func(t *testing.T) {
		// Only the literal sentinel pair counts; 00:00:00-23:58:59 does not
		hours := hoursFor("s1", [3]any{0, "00:00:00", "23:58:59"})
		assert.False(t, IsAlwaysOpen(hours))
	})

	t.Run("mixed schedule is not always open", func(t *testing.T) {
		hours := hoursFor("s1",
			[3]any{0, "00:00:00", "23:59:59"},
			[3]any{1, "09:00:00", "17:00:00"},
		)
		assert.False(t, IsAlwaysOpen(hours))
	})
}
