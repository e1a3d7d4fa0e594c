package models

// Sentinel clock values marking a full-day open interval
const (
	FullDayStart = "00:00:00"
	FullDayEnd   = "23:59:59"
)

// BusinessHours represents one recurring weekly open interval for a store,
// expressed in the store's local civil time. A store may have any number of
// rows per weekday; a store with no rows at all is treated as open 24/7.
type BusinessHours struct {
	ID             int64  `db:"id"`
	StoreID        string `db:"store_id"`
	DayOfWeek      int    `db:"day_of_week"` // 0=Monday .. 6=Sunday
	StartTimeLocal string `db:"start_time_local"`
	EndTimeLocal   string `db:"end_time_local"`
}

// IsFullDay reports whether the interval is the literal 00:00:00-23:59:59
// sentinel pair. Only this exact pair marks an always-open day.
func (b *BusinessHours) IsFullDay() bool {
	return b.StartTimeLocal == FullDayStart && b.EndTimeLocal == FullDayEnd
}

// DefaultWeeklyHours returns the schedule assumed for a store with no
// declared business hours: open every day of the week, all day.
func DefaultWeeklyHours(storeID string) []*BusinessHours {
	hours := make([]*BusinessHours, 0, 7)
	for day := 0; day < 7; day++ {
		hours = append(hours, &BusinessHours{
			StoreID:        storeID,
			DayOfWeek:      day,
			StartTimeLocal: FullDayStart,
			EndTimeLocal:   FullDayEnd,
		})
	}
	return hours
}
