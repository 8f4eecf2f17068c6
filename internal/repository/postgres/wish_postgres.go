package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
)

type wishRepository struct {
	db *sqlx.DB
}

// NewWishRepository creates a new PostgreSQL wish repository
func NewWishRepository(db *sqlx.DB) repository.WishRepository {
	return &wishRepository{db: db}
}

var wishColumns = []string{
	"id", "couple_code", "title", "description", "wish_type",
	"target_date", "completed", "completed_at", "created_by",
	"created_at", "updated_at",
}

// pendingTitleConstraint is the partial unique index on
// (couple_code, title) WHERE NOT completed. Losing a create race on the
// same title surfaces here and maps to DUPLICATE_WISH.
const pendingTitleConstraint = "wishes_pending_title"

// sortClauses maps each recognized sort key to a fixed ORDER BY clause.
// Sort input never reaches the query as text; it only selects one of
// these entries. The default sort keeps pending wishes ahead of
// completed ones.
var sortClauses = map[domain.WishSort]string{
	domain.WishSortCreatedDesc:    "completed ASC, created_at DESC",
	domain.WishSortCreatedAsc:     "created_at ASC",
	domain.WishSortTitleAsc:       "title ASC",
	domain.WishSortTitleDesc:      "title DESC",
	domain.WishSortTargetDateAsc:  "target_date ASC NULLS LAST",
	domain.WishSortTargetDateDesc: "target_date DESC NULLS LAST",
}

// predicates builds the WHERE clause for a listing. The couple scope is
// always the first predicate; everything else is appended only when it
// deviates from its default, with all values bound as parameters.
func listPredicates(opts domain.WishListOptions) sq.And {
	pred := sq.And{sq.Eq{"couple_code": opts.CoupleCode}}

	switch opts.Status {
	case domain.WishStatusCompleted:
		pred = append(pred, sq.Eq{"completed": true})
	case domain.WishStatusPending:
		pred = append(pred, sq.Eq{"completed": false})
	}

	if opts.Type != "" && opts.Type != "all" {
		pred = append(pred, sq.Eq{"wish_type": opts.Type})
	}

	if search := strings.TrimSpace(opts.Search); search != "" {
		pattern := "%" + search + "%"
		pred = append(pred, sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}

	return pred
}

// List runs the tenant-scoped filtered query and returns one page plus
// the total match count
func (r *wishRepository) List(ctx context.Context, opts domain.WishListOptions) ([]domain.Wish, int, error) {
	pred := listPredicates(opts)

	countSQL, countArgs, err := sq.Select("COUNT(*)").
		From("wishes").
		Where(pred).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to count wishes: %w", translateInfra(err))
	}

	orderBy, ok := sortClauses[opts.Sort]
	if !ok {
		orderBy = sortClauses[domain.WishSortCreatedDesc]
	}

	offset := (opts.Page - 1) * opts.PageSize
	listSQL, listArgs, err := sq.Select(wishColumns...).
		From("wishes").
		Where(pred).
		OrderBy(orderBy).
		Limit(uint64(opts.PageSize)).
		Offset(uint64(offset)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list query: %w", err)
	}

	wishes := []domain.Wish{}
	if err := r.db.SelectContext(ctx, &wishes, listSQL, listArgs...); err != nil {
		return nil, 0, fmt.Errorf("failed to list wishes: %w", translateInfra(err))
	}

	return wishes, total, nil
}

// TypeBreakdown aggregates the couple's whole collection, independent
// of any active list filters
func (r *wishRepository) TypeBreakdown(ctx context.Context, coupleCode string) ([]domain.TypeStat, error) {
	query := `
		SELECT
			wish_type,
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE completed) AS completed
		FROM wishes
		WHERE couple_code = $1
		GROUP BY wish_type
		ORDER BY total DESC`

	stats := []domain.TypeStat{}
	if err := r.db.SelectContext(ctx, &stats, query, coupleCode); err != nil {
		return nil, fmt.Errorf("failed to get type breakdown: %w", translateInfra(err))
	}

	for i := range stats {
		if stats[i].Total > 0 {
			stats[i].CompletionRate = (stats[i].Completed*100 + stats[i].Total/2) / stats[i].Total
		}
	}

	return stats, nil
}

// GetOwner returns the owning couple code for a wish id
func (r *wishRepository) GetOwner(ctx context.Context, id int64) (string, error) {
	var owner string
	err := r.db.GetContext(ctx, &owner, `SELECT couple_code FROM wishes WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrWishNotFound
		}
		return "", fmt.Errorf("failed to get wish owner: %w", translateInfra(err))
	}

	return owner, nil
}

// HasPendingTitle reports whether an incomplete wish with this exact
// title already exists for the couple. Completed wishes are excluded so
// a finished wish can be re-added.
func (r *wishRepository) HasPendingTitle(ctx context.Context, coupleCode, title string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (
			SELECT 1 FROM wishes
			WHERE couple_code = $1 AND title = $2 AND completed = false
		)`

	if err := r.db.GetContext(ctx, &exists, query, coupleCode, title); err != nil {
		return false, fmt.Errorf("failed to check duplicate title: %w", translateInfra(err))
	}

	return exists, nil
}

// Create inserts the wish and appends its activity entry in one
// transaction; both commit or neither does
func (r *wishRepository) Create(ctx context.Context, wish *domain.Wish, entry *domain.ActivityLog) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", translateInfra(err))
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO wishes (couple_code, title, description, wish_type, target_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + strings.Join(wishColumns, ", ")

	err = tx.QueryRowxContext(ctx, query,
		wish.CoupleCode,
		wish.Title,
		wish.Description,
		wish.Type,
		wish.TargetDate,
		wish.CreatedBy,
	).StructScan(wish)
	if err != nil {
		if isUniqueViolation(err, pendingTitleConstraint) {
			return domain.ErrDuplicateWish
		}
		return fmt.Errorf("failed to create wish: %w", translateInfra(err))
	}

	if err := appendActivity(ctx, tx, entry); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit wish creation: %w", translateInfra(err))
	}

	return nil
}

// Update applies the provided column changes and the activity entry in
// one transaction and returns the updated wish
func (r *wishRepository) Update(ctx context.Context, id int64, coupleCode string, changes domain.WishChanges, entry *domain.ActivityLog) (*domain.Wish, error) {
	ub := sq.Update("wishes").PlaceholderFormat(sq.Dollar)

	if changes.Title != nil {
		ub = ub.Set("title", *changes.Title)
	}
	if changes.Description != nil {
		if *changes.Description == "" {
			ub = ub.Set("description", nil)
		} else {
			ub = ub.Set("description", *changes.Description)
		}
	}
	if changes.Type != nil {
		ub = ub.Set("wish_type", *changes.Type)
	}
	if changes.ClearTargetDate {
		ub = ub.Set("target_date", nil)
	} else if changes.TargetDate != nil {
		ub = ub.Set("target_date", *changes.TargetDate)
	}
	if changes.Completed != nil {
		ub = ub.Set("completed", *changes.Completed)
		if *changes.Completed {
			// Completing an already completed wish keeps the original
			// completion time.
			ub = ub.Set("completed_at", sq.Expr("COALESCE(completed_at, NOW())"))
		} else {
			ub = ub.Set("completed_at", nil)
		}
	}

	query, args, err := ub.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "couple_code": coupleCode}).
		Suffix("RETURNING " + strings.Join(wishColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build update query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", translateInfra(err))
	}
	defer func() { _ = tx.Rollback() }()

	var wish domain.Wish
	if err := tx.QueryRowxContext(ctx, query, args...).StructScan(&wish); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWishNotFound
		}
		if isUniqueViolation(err, pendingTitleConstraint) {
			return nil, domain.ErrDuplicateWish
		}
		return nil, fmt.Errorf("failed to update wish: %w", translateInfra(err))
	}

	// The audit prose names the wish as it reads after the update; a
	// completion toggle gets its own wording.
	switch {
	case changes.Completed != nil && *changes.Completed:
		entry.Description = fmt.Sprintf("completed wish: %s", wish.Title)
	case changes.Completed != nil:
		entry.Description = fmt.Sprintf("reactivated wish: %s", wish.Title)
	default:
		entry.Description = fmt.Sprintf("updated wish: %s", wish.Title)
	}

	if err := appendActivity(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit wish update: %w", translateInfra(err))
	}

	return &wish, nil
}

// Delete removes the wish and appends its activity entry in one
// transaction, returning the deleted row for confirmation messaging
func (r *wishRepository) Delete(ctx context.Context, id int64, coupleCode string, entry *domain.ActivityLog) (*domain.Wish, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", translateInfra(err))
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		DELETE FROM wishes
		WHERE id = $1 AND couple_code = $2
		RETURNING ` + strings.Join(wishColumns, ", ")

	var wish domain.Wish
	if err := tx.QueryRowxContext(ctx, query, id, coupleCode).StructScan(&wish); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrWishNotFound
		}
		return nil, fmt.Errorf("failed to delete wish: %w", translateInfra(err))
	}

	entry.Description = fmt.Sprintf("deleted wish: %s", wish.Title)
	if err := appendActivity(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit wish deletion: %w", translateInfra(err))
	}

	return &wish, nil
}
