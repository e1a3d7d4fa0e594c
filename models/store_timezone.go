package models

// StoreTimezone maps a store to its IANA timezone identifier.
// At most one row exists per store (unique constraint).
type StoreTimezone struct {
	ID          int64  `db:"id"`
	StoreID     string `db:"store_id"`
	TimezoneStr string `db:"timezone_str"`
}
