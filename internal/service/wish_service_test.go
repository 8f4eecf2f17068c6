package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

// fakeWishRepo records calls and serves canned results so the service
// rules can be exercised without a database.
type fakeWishRepo struct {
	wishes        []domain.Wish
	total         int
	breakdown     []domain.TypeStat
	pendingTitles map[string]bool

	lastListOpts domain.WishListOptions
	lastChanges  domain.WishChanges
	created      *domain.Wish
	entries      []*domain.ActivityLog

	updateResult *domain.Wish
	deleteResult *domain.Wish
	err          error
}

func (f *fakeWishRepo) List(_ context.Context, opts domain.WishListOptions) ([]domain.Wish, int, error) {
	f.lastListOpts = opts
	return f.wishes, f.total, f.err
}

func (f *fakeWishRepo) TypeBreakdown(_ context.Context, _ string) ([]domain.TypeStat, error) {
	return f.breakdown, f.err
}

func (f *fakeWishRepo) GetOwner(_ context.Context, _ int64) (string, error) {
	return "", domain.ErrWishNotFound
}

func (f *fakeWishRepo) HasPendingTitle(_ context.Context, _, title string) (bool, error) {
	return f.pendingTitles[title], nil
}

func (f *fakeWishRepo) Create(_ context.Context, wish *domain.Wish, entry *domain.ActivityLog) error {
	if f.err != nil {
		return f.err
	}
	wish.ID = 1
	wish.CreatedAt = time.Now()
	wish.UpdatedAt = wish.CreatedAt
	f.created = wish
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeWishRepo) Update(_ context.Context, _ int64, _ string, changes domain.WishChanges, entry *domain.ActivityLog) (*domain.Wish, error) {
	f.lastChanges = changes
	f.entries = append(f.entries, entry)
	if f.err != nil {
		return nil, f.err
	}
	return f.updateResult, nil
}

func (f *fakeWishRepo) Delete(_ context.Context, _ int64, _ string, entry *domain.ActivityLog) (*domain.Wish, error) {
	f.entries = append(f.entries, entry)
	if f.err != nil {
		return nil, f.err
	}
	return f.deleteResult, nil
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestCreateWishValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateWishRequest
		wantErr error
	}{
		{
			name:    "empty title",
			req:     CreateWishRequest{Title: "   "},
			wantErr: domain.ErrEmptyTitle,
		},
		{
			name:    "title too long",
			req:     CreateWishRequest{Title: strings.Repeat("a", domain.MaxTitleLen+1)},
			wantErr: domain.ErrTitleTooLong,
		},
		{
			name: "description too long",
			req: CreateWishRequest{
				Title:       "picnic at the lake",
				Description: strPtr(strings.Repeat("a", domain.MaxDescriptionLen+1)),
			},
			wantErr: domain.ErrDescTooLong,
		},
		{
			name: "unknown wish type",
			req: CreateWishRequest{
				Title:    "picnic at the lake",
				WishType: strPtr("adventure"),
			},
			wantErr: domain.ErrInvalidWishType,
		},
		{
			name: "malformed target date",
			req: CreateWishRequest{
				Title:      "picnic at the lake",
				TargetDate: strPtr("next tuesday"),
			},
			wantErr: domain.ErrInvalidTargetDate,
		},
		{
			name: "target date too far in the past",
			req: CreateWishRequest{
				Title:      "picnic at the lake",
				TargetDate: strPtr("2020-01-01"),
			},
			wantErr: domain.ErrPastTargetDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewWishService(&fakeWishRepo{pendingTitles: map[string]bool{}})
			_, err := svc.Create(context.Background(), "luna-y-sol", tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateWishDefaults(t *testing.T) {
	repo := &fakeWishRepo{pendingTitles: map[string]bool{}}
	svc := NewWishService(repo)

	dto, err := svc.Create(context.Background(), "luna-y-sol", CreateWishRequest{
		Title:       "  picnic at the lake  ",
		Description: strPtr("   "),
	})
	require.NoError(t, err)

	assert.Equal(t, "picnic at the lake", dto.Title)
	assert.Equal(t, domain.WishTypeOther, dto.Type)
	assert.Nil(t, dto.Description)
	assert.Nil(t, dto.TargetDate)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, domain.ActionCreateWish, repo.entries[0].ActionType)
	assert.Equal(t, "added wish: picnic at the lake", repo.entries[0].Description)
}

func TestCreateWishAcceptsYesterday(t *testing.T) {
	// Client clocks may run a day behind the server, so yesterday still
	// passes the past-date check.
	repo := &fakeWishRepo{pendingTitles: map[string]bool{}}
	svc := NewWishService(repo)

	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	_, err := svc.Create(context.Background(), "luna-y-sol", CreateWishRequest{
		Title:      "picnic at the lake",
		TargetDate: &yesterday,
	})
	assert.NoError(t, err)
}

func TestCreateWishRejectsDuplicatePendingTitle(t *testing.T) {
	repo := &fakeWishRepo{pendingTitles: map[string]bool{"picnic at the lake": true}}
	svc := NewWishService(repo)

	_, err := svc.Create(context.Background(), "luna-y-sol", CreateWishRequest{
		Title: "picnic at the lake",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateWish)
	assert.Nil(t, repo.created)
}

func TestUpdateWishRequiresAtLeastOneField(t *testing.T) {
	svc := NewWishService(&fakeWishRepo{})

	_, err := svc.Update(context.Background(), "luna-y-sol", 1, UpdateWishRequest{})
	assert.ErrorIs(t, err, domain.ErrNoUpdateFields)
}

func TestUpdateWishPartialSemantics(t *testing.T) {
	wish := &domain.Wish{ID: 1, Title: "picnic at the lake", Type: domain.WishTypeDate}
	repo := &fakeWishRepo{updateResult: wish}
	svc := NewWishService(repo)

	_, err := svc.Update(context.Background(), "luna-y-sol", 1, UpdateWishRequest{
		Title:      strPtr("  picnic at the lake  "),
		TargetDate: strPtr(""),
	})
	require.NoError(t, err)

	// Absent fields stay nil; the empty target date becomes an explicit
	// clear rather than a parse error.
	require.NotNil(t, repo.lastChanges.Title)
	assert.Equal(t, "picnic at the lake", *repo.lastChanges.Title)
	assert.True(t, repo.lastChanges.ClearTargetDate)
	assert.Nil(t, repo.lastChanges.TargetDate)
	assert.Nil(t, repo.lastChanges.Description)
	assert.Nil(t, repo.lastChanges.Type)
	assert.Nil(t, repo.lastChanges.Completed)
}

func TestUpdateWishCompletionToggle(t *testing.T) {
	wish := &domain.Wish{ID: 1, Title: "picnic at the lake"}
	repo := &fakeWishRepo{updateResult: wish}
	svc := NewWishService(repo)

	_, err := svc.Update(context.Background(), "luna-y-sol", 1, UpdateWishRequest{
		Completed: boolPtr(true),
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastChanges.Completed)
	assert.True(t, *repo.lastChanges.Completed)
}

func TestUpdateWishValidation(t *testing.T) {
	svc := NewWishService(&fakeWishRepo{})

	_, err := svc.Update(context.Background(), "luna-y-sol", 1, UpdateWishRequest{
		WishType: strPtr("adventure"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidWishType)

	_, err = svc.Update(context.Background(), "luna-y-sol", 1, UpdateWishRequest{
		TargetDate: strPtr("someday"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTargetDate)
}

func TestListWishesNormalizesOptions(t *testing.T) {
	repo := &fakeWishRepo{}
	svc := NewWishService(repo)

	resp, err := svc.List(context.Background(), "luna-y-sol", ListWishesRequest{
		Page:   -2,
		Limit:  9999,
		Status: "whatever",
		Sort:   "by-vibes",
		Search: "  lake  ",
	})
	require.NoError(t, err)

	assert.Equal(t, "luna-y-sol", repo.lastListOpts.CoupleCode)
	assert.Equal(t, 1, repo.lastListOpts.Page)
	assert.Equal(t, 100, repo.lastListOpts.PageSize)
	assert.Equal(t, domain.WishStatusAll, repo.lastListOpts.Status)
	assert.Equal(t, domain.WishSortCreatedDesc, repo.lastListOpts.Sort)
	assert.Equal(t, "lake", repo.lastListOpts.Search)
	assert.Equal(t, "all", repo.lastListOpts.Type)

	assert.Equal(t, "all", resp.Filters.Status)
	assert.Equal(t, "created_desc", resp.Filters.Sort)
}

func TestListWishesRejectsUnknownType(t *testing.T) {
	svc := NewWishService(&fakeWishRepo{})

	_, err := svc.List(context.Background(), "luna-y-sol", ListWishesRequest{Type: "adventure"})
	assert.ErrorIs(t, err, domain.ErrInvalidWishType)
}

func TestListWishesStatistics(t *testing.T) {
	repo := &fakeWishRepo{
		wishes: []domain.Wish{{ID: 1, Title: "picnic at the lake"}},
		total:  7,
		breakdown: []domain.TypeStat{
			{Type: domain.WishTypeTravel, Total: 4, Completed: 2, CompletionRate: 50},
		},
	}
	svc := NewWishService(repo)

	resp, err := svc.List(context.Background(), "luna-y-sol", ListWishesRequest{
		Page: 1, Limit: 20, Status: "pending",
	})
	require.NoError(t, err)

	// The total follows the active filters; the breakdown covers the
	// whole collection.
	assert.Equal(t, 7, resp.Statistics.Total)
	assert.Equal(t, 7, resp.Pagination.TotalItems)
	require.Len(t, resp.Statistics.TypeBreakdown, 1)
	assert.Equal(t, domain.WishTypeTravel, resp.Statistics.TypeBreakdown[0].Type)
}

func TestDeleteWish(t *testing.T) {
	repo := &fakeWishRepo{deleteResult: &domain.Wish{ID: 9, Title: "picnic at the lake"}}
	svc := NewWishService(repo)

	resp, err := svc.Delete(context.Background(), "luna-y-sol", 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.ID)
	assert.Equal(t, "picnic at the lake", resp.Title)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, domain.ActionDeleteWish, repo.entries[0].ActionType)
}

func TestDeleteWishNotFound(t *testing.T) {
	repo := &fakeWishRepo{err: domain.ErrWishNotFound}
	svc := NewWishService(repo)

	_, err := svc.Delete(context.Background(), "luna-y-sol", 404)
	assert.ErrorIs(t, err, domain.ErrWishNotFound)
}
