package ingest

import (
	"testing"
	"time"

	"storepulse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "fractional seconds with UTC marker",
			raw:  "2023-01-25 10:05:52.668297 UTC",
			want: time.Date(2023, 1, 25, 10, 5, 52, 668297000, time.UTC),
		},
		{
			name: "whole seconds with UTC marker",
			raw:  "2023-01-25 10:05:52 UTC",
			want: time.Date(2023, 1, 25, 10, 5, 52, 0, time.UTC),
		},
		{
			name: "no marker",
			raw:  "2023-01-25 10:05:52.5",
			want: time.Date(2023, 1, 25, 10, 5, 52, 500000000, time.UTC),
		},
		{
			name: "rfc3339",
			raw:  "2023-01-25T10:05:52Z",
			want: time.Date(2023, 1, 25, 10, 5, 52, 0, time.UTC),
		},
		{
			name: "surrounding whitespace",
			raw:  "  2023-01-25 10:05:52 UTC  ",
			want: time.Date(2023, 1, 25, 10, 5, 52, 0, time.UTC),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStatusTimestamp(tt.raw)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseStatusTimestamp_Invalid(t *testing.T) {
	for _, raw := range []string{"", "   ", "UTC", "25-01-2023 10:05:52", "not a time"} {
		_, err := ParseStatusTimestamp(raw)
		assert.Error(t, err, "raw %q", raw)
	}
}

func TestParseStatusRecord(t *testing.T) {
	status, reason := parseStatusRecord(map[string]string{
		"store_id":      "store-1",
		"timestamp_utc": "2023-01-25 10:05:52.668297 UTC",
		"status":        "active",
	})
	require.Empty(t, reason)
	assert.Equal(t, "store-1", status.StoreID)
	assert.Equal(t, "active", status.Status)
	assert.Equal(t, 2023, status.TimestampUTC.Year())

	_, reason = parseStatusRecord(map[string]string{"timestamp_utc": "2023-01-25 10:05:52", "status": "active"})
	assert.Equal(t, "missing store_id", reason)

	_, reason = parseStatusRecord(map[string]string{"store_id": "s", "timestamp_utc": "2023-01-25 10:05:52"})
	assert.Equal(t, "missing status", reason)

	_, reason = parseStatusRecord(map[string]string{"store_id": "s", "timestamp_utc": "garbage", "status": "active"})
	assert.Contains(t, reason, "invalid timestamp_utc")
}

func TestParseBusinessHoursRecord(t *testing.T) {
	hours, reason := parseBusinessHoursRecord(map[string]string{
		"store_id":         "store-1",
		"day":              "3",
		"start_time_local": "09:00:00",
		"end_time_local":   "17:30:00",
	})
	require.Empty(t, reason)
	assert.Equal(t, 3, hours.DayOfWeek)
	assert.Equal(t, "09:00:00", hours.StartTimeLocal)
	assert.Equal(t, "17:30:00", hours.EndTimeLocal)
}

func TestParseBusinessHoursRecord_BlankTimesDefaultToFullDay(t *testing.T) {
	hours, reason := parseBusinessHoursRecord(map[string]string{
		"store_id": "store-1",
		"day":      "0",
	})
	require.Empty(t, reason)
	assert.Equal(t, models.FullDayStart, hours.StartTimeLocal)
	assert.Equal(t, models.FullDayEnd, hours.EndTimeLocal)
	assert.True(t, hours.IsFullDay())
}

func TestParseBusinessHoursRecord_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		reason string
	}{
		{"missing store", map[string]string{"day": "1"}, "missing store_id"},
		{"day out of range", map[string]string{"store_id": "s", "day": "7"}, `invalid day "7"`},
		{"negative day", map[string]string{"store_id": "s", "day": "-1"}, `invalid day "-1"`},
		{"non-numeric day", map[string]string{"store_id": "s", "day": "monday"}, `invalid day "monday"`},
		{"bad clock", map[string]string{"store_id": "s", "day": "1", "start_time_local": "25:00:00"}, `invalid start_time_local "25:00:00"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reason := parseBusinessHoursRecord(tt.fields)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestParseTimezoneRecord(t *testing.T) {
	tz, reason := parseTimezoneRecord(map[string]string{
		"store_id":     "store-1",
		"timezone_str": "America/Denver",
	})
	require.Empty(t, reason)
	assert.Equal(t, "America/Denver", tz.TimezoneStr)

	_, reason = parseTimezoneRecord(map[string]string{"store_id": "s", "timezone_str": "Mars/OlympusMons"})
	assert.Contains(t, reason, "unknown timezone")

	_, reason = parseTimezoneRecord(map[string]string{"store_id": "s"})
	assert.Equal(t, "missing timezone_str", reason)
}
