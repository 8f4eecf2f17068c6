package repository

import (
	"context"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

type QuoteRepository interface {
	Random(ctx context.Context) (*domain.LoveQuote, error)
}
