package service

import (
	"context"
	"time"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
)

const recentActivityLimit = 10

type StatsService struct {
	coupleRepo   repository.CoupleRepository
	wishRepo     repository.WishRepository
	activityRepo repository.ActivityRepository
}

func NewStatsService(
	coupleRepo repository.CoupleRepository,
	wishRepo repository.WishRepository,
	activityRepo repository.ActivityRepository,
) *StatsService {
	return &StatsService{
		coupleRepo:   coupleRepo,
		wishRepo:     wishRepo,
		activityRepo: activityRepo,
	}
}

type StatsResponse struct {
	DaysTogether   int                  `json:"daysTogether"`
	Wishes         *domain.WishStats    `json:"wishes"`
	TypeBreakdown  []domain.TypeStat    `json:"typeBreakdown"`
	RecentActivity []domain.ActivityLog `json:"recentActivity"`
}

// Overview assembles the couple's dashboard numbers.
func (s *StatsService) Overview(ctx context.Context, couple *domain.Couple) (*StatsResponse, error) {
	stats, err := s.coupleRepo.WishStats(ctx, couple.CoupleCode)
	if err != nil {
		return nil, err
	}

	breakdown, err := s.wishRepo.TypeBreakdown(ctx, couple.CoupleCode)
	if err != nil {
		return nil, err
	}

	activity, err := s.activityRepo.ListRecent(ctx, couple.CoupleCode, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	return &StatsResponse{
		DaysTogether:   couple.DaysTogether(time.Now()),
		Wishes:         stats,
		TypeBreakdown:  breakdown,
		RecentActivity: activity,
	}, nil
}
