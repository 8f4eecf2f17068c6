package repository

import (
	"context"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

type WishRepository interface {
	// List runs the tenant-scoped filtered query and returns the page
	// of wishes plus the total match count.
	List(ctx context.Context, opts domain.WishListOptions) ([]domain.Wish, int, error)
	// TypeBreakdown aggregates the couple's whole collection,
	// regardless of any active list filters.
	TypeBreakdown(ctx context.Context, coupleCode string) ([]domain.TypeStat, error)
	// GetOwner returns the owning couple code for a wish id, or
	// domain.ErrWishNotFound.
	GetOwner(ctx context.Context, id int64) (string, error)
	HasPendingTitle(ctx context.Context, coupleCode, title string) (bool, error)
	// Create, Update and Delete each pair the row mutation with the
	// activity log append inside a single transaction.
	Create(ctx context.Context, wish *domain.Wish, entry *domain.ActivityLog) error
	Update(ctx context.Context, id int64, coupleCode string, changes domain.WishChanges, entry *domain.ActivityLog) (*domain.Wish, error)
	Delete(ctx context.Context, id int64, coupleCode string, entry *domain.ActivityLog) (*domain.Wish, error)
}
