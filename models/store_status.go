package models

import (
	"time"
)

// StoreStatus values as they appear in the source data
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// StoreStatus represents a single point-in-time observation of a store
type StoreStatus struct {
	ID           int64     `db:"id"`
	StoreID      string    `db:"store_id"`
	TimestampUTC time.Time `db:"timestamp_utc"`
	Status       string    `db:"status"`
}

// IsActive reports whether the observation counts toward uptime.
// Any status other than "active" is treated as inactive.
func (s *StoreStatus) IsActive() bool {
	return s.Status == StatusActive
}
