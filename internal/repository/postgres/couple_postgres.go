package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
)

type coupleRepository struct {
	db *sqlx.DB
}

// NewCoupleRepository creates a new PostgreSQL couple repository
func NewCoupleRepository(db *sqlx.DB) repository.CoupleRepository {
	return &coupleRepository{db: db}
}

const coupleColumns = `id, couple_code, start_date, partner1_name, partner2_name, created_at, updated_at`

// GetByCode retrieves a couple by its access code
func (r *coupleRepository) GetByCode(ctx context.Context, coupleCode string) (*domain.Couple, error) {
	query := `
		SELECT ` + coupleColumns + `
		FROM couples
		WHERE couple_code = $1`

	var couple domain.Couple
	err := r.db.GetContext(ctx, &couple, query, coupleCode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCoupleNotFound
		}
		return nil, fmt.Errorf("failed to get couple by code: %w", translateInfra(err))
	}

	return &couple, nil
}

// Create inserts a new couple and its registration activity entry in
// one transaction. A concurrent registration of the same code loses at
// the unique constraint and is reported as COUPLE_CODE_EXISTS.
func (r *coupleRepository) Create(ctx context.Context, couple *domain.Couple, entry *domain.ActivityLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateInfra(err))
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO couples (couple_code, start_date, partner1_name, partner2_name)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + coupleColumns

	err = tx.QueryRowxContext(ctx, query,
		couple.CoupleCode,
		couple.StartDate,
		couple.Partner1Name,
		couple.Partner2Name,
	).StructScan(couple)
	if err != nil {
		if isUniqueViolation(err, "couple_code") {
			return domain.ErrCoupleCodeExists
		}
		return fmt.Errorf("failed to create couple: %w", translateInfra(err))
	}

	if err := appendActivity(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit couple creation: %w", translateInfra(err))
	}

	return nil
}

// UpdateProfile changes only the provided fields and returns the
// updated couple
func (r *coupleRepository) UpdateProfile(ctx context.Context, coupleCode string, changes domain.CoupleProfileChanges) (*domain.Couple, error) {
	query := `
		UPDATE couples
		SET partner1_name = COALESCE($2, partner1_name),
			partner2_name = COALESCE($3, partner2_name),
			start_date = COALESCE($4, start_date),
			updated_at = NOW()
		WHERE couple_code = $1
		RETURNING ` + coupleColumns

	var couple domain.Couple
	err := r.db.QueryRowxContext(ctx, query,
		coupleCode,
		changes.Partner1Name,
		changes.Partner2Name,
		changes.StartDate,
	).StructScan(&couple)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCoupleNotFound
		}
		return nil, fmt.Errorf("failed to update couple profile: %w", translateInfra(err))
	}

	return &couple, nil
}

// TouchLogin bumps the couple's updated_at and appends the login
// activity entry in one transaction
func (r *coupleRepository) TouchLogin(ctx context.Context, coupleCode string, entry *domain.ActivityLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateInfra(err))
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx,
		`UPDATE couples SET updated_at = NOW() WHERE couple_code = $1`, coupleCode)
	if err != nil {
		return fmt.Errorf("failed to touch couple: %w", translateInfra(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrCoupleNotFound
	}

	if err := appendActivity(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit login: %w", translateInfra(err))
	}

	return nil
}

// WishStats aggregates the couple's whole wish collection
func (r *coupleRepository) WishStats(ctx context.Context, coupleCode string) (*domain.WishStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE completed) AS completed,
			COUNT(*) FILTER (WHERE NOT completed) AS pending
		FROM wishes
		WHERE couple_code = $1`

	var stats domain.WishStats
	if err := r.db.GetContext(ctx, &stats, query, coupleCode); err != nil {
		return nil, fmt.Errorf("failed to get wish stats: %w", translateInfra(err))
	}

	if stats.Total > 0 {
		stats.CompletionRate = (stats.Completed*100 + stats.Total/2) / stats.Total
	}

	return &stats, nil
}

// Delete removes a couple; wishes and activity logs cascade at the
// database level
func (r *coupleRepository) Delete(ctx context.Context, coupleCode string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM couples WHERE couple_code = $1`, coupleCode)
	if err != nil {
		return fmt.Errorf("failed to delete couple: %w", translateInfra(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrCoupleNotFound
	}

	return nil
}
