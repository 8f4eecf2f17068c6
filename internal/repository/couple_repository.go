package repository

import (
	"context"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

type CoupleRepository interface {
	GetByCode(ctx context.Context, coupleCode string) (*domain.Couple, error)
	// Create inserts the couple and its registration activity entry in
	// one transaction.
	Create(ctx context.Context, couple *domain.Couple, entry *domain.ActivityLog) error
	UpdateProfile(ctx context.Context, coupleCode string, changes domain.CoupleProfileChanges) (*domain.Couple, error)
	// TouchLogin bumps updated_at and appends the login activity entry.
	TouchLogin(ctx context.Context, coupleCode string, entry *domain.ActivityLog) error
	WishStats(ctx context.Context, coupleCode string) (*domain.WishStats, error)
	// Delete removes the couple; wishes and activity logs cascade.
	Delete(ctx context.Context, coupleCode string) error
}
