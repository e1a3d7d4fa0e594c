package repository

import (
	"context"
	"fmt"

	"storepulse/database"
	"storepulse/models"

	"github.com/jackc/pgx/v5"
)

// StoreTimezoneRepository provides access to store timezone assignments
type StoreTimezoneRepository struct {
	q queryable
}

// NewStoreTimezoneRepository creates a new store timezone repository
func NewStoreTimezoneRepository(db *database.DB) *StoreTimezoneRepository {
	return &StoreTimezoneRepository{q: db.Pool}
}

// NewStoreTimezoneRepositoryWithTx creates a store timezone repository bound
// to a transaction. Used by ingestion so the upsert batch is atomic.
func NewStoreTimezoneRepositoryWithTx(tx pgx.Tx) *StoreTimezoneRepository {
	return &StoreTimezoneRepository{q: tx}
}

// GetByStore returns the timezone assignment for a store, or nil when the
// store has none. Absence is not an error; callers apply the configured
// fallback zone.
func (r *StoreTimezoneRepository) GetByStore(ctx context.Context, storeID string) (*models.StoreTimezone, error) {
	query := `
		SELECT id, store_id, timezone_str
		FROM store_timezones
		WHERE store_id = $1
	`

	var tz models.StoreTimezone
	err := r.q.QueryRow(ctx, query, storeID).Scan(&tz.ID, &tz.StoreID, &tz.TimezoneStr)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timezone for store %s: %w", storeID, err)
	}

	return &tz, nil
}

// BulkUpsert inserts or replaces timezone assignments in one round trip.
// The store_id uniqueness constraint makes re-ingestion idempotent.
func (r *StoreTimezoneRepository) BulkUpsert(ctx context.Context, timezones []*models.StoreTimezone) error {
	if len(timezones) == 0 {
		return nil
	}

	query := `
		INSERT INTO store_timezones (store_id, timezone_str)
		VALUES ($1, $2)
		ON CONFLICT (store_id) DO UPDATE SET timezone_str = EXCLUDED.timezone_str
	`

	batch := &pgx.Batch{}
	for _, tz := range timezones {
		batch.Queue(query, tz.StoreID, tz.TimezoneStr)
	}

	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for range timezones {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to upsert store timezone: %w", err)
		}
	}

	return nil
}
