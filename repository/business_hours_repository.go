package repository

import (
	"context"
	"fmt"

	"storepulse/database"
	"storepulse/models"

	"github.com/jackc/pgx/v5"
)

// BusinessHoursRepository provides access to the weekly open intervals
type BusinessHoursRepository struct {
	q queryable
}

// NewBusinessHoursRepository creates a new business hours repository
func NewBusinessHoursRepository(db *database.DB) *BusinessHoursRepository {
	return &BusinessHoursRepository{q: db.Pool}
}

// GetByStore returns the declared open intervals for a store, ordered by
// weekday and start time. An empty result means the store never declared
// hours; callers fall back to models.DefaultWeeklyHours.
func (r *BusinessHoursRepository) GetByStore(ctx context.Context, storeID string) ([]*models.BusinessHours, error) {
	query := `
		SELECT id, store_id, day_of_week, start_time_local, end_time_local
		FROM business_hours
		WHERE store_id = $1
		ORDER BY day_of_week, start_time_local
	`

	rows, err := r.q.Query(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query business hours for store %s: %w", storeID, err)
	}
	defer rows.Close()

	var hours []*models.BusinessHours
	for rows.Next() {
		var bh models.BusinessHours
		if err := rows.Scan(&bh.ID, &bh.StoreID, &bh.DayOfWeek, &bh.StartTimeLocal, &bh.EndTimeLocal); err != nil {
			return nil, fmt.Errorf("failed to scan business hours row: %w", err)
		}
		hours = append(hours, &bh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read business hours rows: %w", err)
	}

	return hours, nil
}

// BulkInsert appends a batch of open intervals using the COPY protocol
func (r *BusinessHoursRepository) BulkInsert(ctx context.Context, hours []*models.BusinessHours) (int64, error) {
	if len(hours) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(hours))
	for _, bh := range hours {
		rows = append(rows, []any{bh.StoreID, bh.DayOfWeek, bh.StartTimeLocal, bh.EndTimeLocal})
	}

	copied, err := r.q.CopyFrom(
		ctx,
		pgx.Identifier{"business_hours"},
		[]string{"store_id", "day_of_week", "start_time_local", "end_time_local"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert business hours: %w", err)
	}

	return copied, nil
}
