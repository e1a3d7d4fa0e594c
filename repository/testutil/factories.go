package testutil

import (
	"time"

	"storepulse/models"
)

// CreateTestStatus creates a status observation with the given timestamp
func CreateTestStatus(storeID string, ts time.Time, status string) *models.StoreStatus {
	return &models.StoreStatus{
		StoreID:      storeID,
		TimestampUTC: ts,
		Status:       status,
	}
}

// CreateTestBusinessHours creates one weekly open interval
func CreateTestBusinessHours(storeID string, day int, start, end string) *models.BusinessHours {
	return &models.BusinessHours{
		StoreID:        storeID,
		DayOfWeek:      day,
		StartTimeLocal: start,
		EndTimeLocal:   end,
	}
}

// CreateTestTimezone creates a timezone assignment
func CreateTestTimezone(storeID, timezoneStr string) *models.StoreTimezone {
	return &models.StoreTimezone{
		StoreID:     storeID,
		TimezoneStr: timezoneStr,
	}
}
