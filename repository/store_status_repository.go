package repository

import (
	"context"
	"fmt"
	"time"

	"storepulse/database"
	"storepulse/models"

	"github.com/jackc/pgx/v5"
)

// StoreStatusRepository provides access to the store status observations
type StoreStatusRepository struct {
	q queryable
}

// NewStoreStatusRepository creates a new store status repository
func NewStoreStatusRepository(db *database.DB) *StoreStatusRepository {
	return &StoreStatusRepository{q: db.Pool}
}

// LatestTimestamp returns the most recent observation timestamp across all
// stores, or nil when no observations exist at all.
func (r *StoreStatusRepository) LatestTimestamp(ctx context.Context) (*time.Time, error) {
	query := `
		SELECT timestamp_utc
		FROM store_status
		ORDER BY timestamp_utc DESC
		LIMIT 1
	`

	var ts time.Time
	err := r.q.QueryRow(ctx, query).Scan(&ts)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest status timestamp: %w", err)
	}

	return &ts, nil
}

// DistinctStoreIDs returns the identifiers of all stores that have at least
// one status observation.
func (r *StoreStatusRepository) DistinctStoreIDs(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT store_id
		FROM store_status
		ORDER BY store_id
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct store IDs: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan store ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read store IDs: %w", err)
	}

	return ids, nil
}

// CountStatuses counts the observations for a store inside [start, end],
// split into active and everything else. Bounds are inclusive.
func (r *StoreStatusRepository) CountStatuses(ctx context.Context, storeID string, start, end time.Time) (active int, inactive int, err error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = $4),
			COUNT(*) FILTER (WHERE status <> $4)
		FROM store_status
		WHERE store_id = $1
		  AND timestamp_utc >= $2
		  AND timestamp_utc <= $3
	`

	err = r.q.QueryRow(ctx, query, storeID, start, end, models.StatusActive).Scan(&active, &inactive)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count statuses for store %s: %w", storeID, err)
	}

	return active, inactive, nil
}

// GetRange returns the observations for a store inside [start, end] ordered
// by timestamp.
func (r *StoreStatusRepository) GetRange(ctx context.Context, storeID string, start, end time.Time) ([]*models.StoreStatus, error) {
	query := `
		SELECT id, store_id, timestamp_utc, status
		FROM store_status
		WHERE store_id = $1
		  AND timestamp_utc >= $2
		  AND timestamp_utc <= $3
		ORDER BY timestamp_utc
	`

	rows, err := r.q.Query(ctx, query, storeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query statuses for store %s: %w", storeID, err)
	}
	defer rows.Close()

	var statuses []*models.StoreStatus
	for rows.Next() {
		var s models.StoreStatus
		if err := rows.Scan(&s.ID, &s.StoreID, &s.TimestampUTC, &s.Status); err != nil {
			return nil, fmt.Errorf("failed to scan status row: %w", err)
		}
		statuses = append(statuses, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read status rows: %w", err)
	}

	return statuses, nil
}

// BulkInsert appends a batch of observations using the Postgres COPY
// protocol. The table has no uniqueness constraint, so repeated loads of the
// same file simply duplicate rows, matching the source data contract.
func (r *StoreStatusRepository) BulkInsert(ctx context.Context, statuses []*models.StoreStatus) (int64, error) {
	if len(statuses) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []any{s.StoreID, s.TimestampUTC, s.Status})
	}

	copied, err := r.q.CopyFrom(
		ctx,
		pgx.Identifier{"store_status"},
		[]string{"store_id", "timestamp_utc", "status"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk insert store statuses: %w", err)
	}

	return copied, nil
}
