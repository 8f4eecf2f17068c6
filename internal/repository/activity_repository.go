package repository

import (
	"context"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

type ActivityRepository interface {
	ListRecent(ctx context.Context, coupleCode string, limit int) ([]domain.ActivityLog, error)
}
