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

type quoteRepository struct {
	db *sqlx.DB
}

// NewQuoteRepository creates a new PostgreSQL love quote repository
func NewQuoteRepository(db *sqlx.DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

// Random picks one active quote at random; returns nil when the table
// is empty
func (r *quoteRepository) Random(ctx context.Context) (*domain.LoveQuote, error) {
	query := `
		SELECT id, content, category, is_active, created_at
		FROM love_quotes
		WHERE is_active = true
		ORDER BY RANDOM()
		LIMIT 1`

	var quote domain.LoveQuote
	err := r.db.GetContext(ctx, &quote, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get random quote: %w", translateInfra(err))
	}

	return &quote, nil
}
