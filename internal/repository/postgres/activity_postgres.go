package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
)

type activityRepository struct {
	db *sqlx.DB
}

// NewActivityRepository creates a new PostgreSQL activity log repository
func NewActivityRepository(db *sqlx.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

// ListRecent retrieves the latest activity entries for a couple
func (r *activityRepository) ListRecent(ctx context.Context, coupleCode string, limit int) ([]domain.ActivityLog, error) {
	query := `
		SELECT id, couple_code, action_type, action_description, created_at
		FROM activity_logs
		WHERE couple_code = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`

	entries := []domain.ActivityLog{}
	if err := r.db.SelectContext(ctx, &entries, query, coupleCode, limit); err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", translateInfra(err))
	}

	return entries, nil
}

// appendActivity inserts an activity entry inside the caller's
// transaction. Mutations call this so the audit row commits or rolls
// back together with the data change.
func appendActivity(ctx context.Context, tx *sqlx.Tx, entry *domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (couple_code, action_type, action_description)
		VALUES ($1, $2, $3)`

	if _, err := tx.ExecContext(ctx, query, entry.CoupleCode, entry.ActionType, entry.Description); err != nil {
		return fmt.Errorf("failed to append activity log: %w", translateInfra(err))
	}

	return nil
}
