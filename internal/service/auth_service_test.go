package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/pkg/jwt"
)

type fakeCoupleRepo struct {
	couples map[string]*domain.Couple
	stats   *domain.WishStats

	created *domain.Couple
	entries []*domain.ActivityLog
	touched []string
	err     error
}

func newFakeCoupleRepo() *fakeCoupleRepo {
	return &fakeCoupleRepo{
		couples: map[string]*domain.Couple{},
		stats:   &domain.WishStats{},
	}
}

func (f *fakeCoupleRepo) GetByCode(_ context.Context, coupleCode string) (*domain.Couple, error) {
	if f.err != nil {
		return nil, f.err
	}
	couple, ok := f.couples[coupleCode]
	if !ok {
		return nil, domain.ErrCoupleNotFound
	}
	return couple, nil
}

func (f *fakeCoupleRepo) Create(_ context.Context, couple *domain.Couple, entry *domain.ActivityLog) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.couples[couple.CoupleCode]; exists {
		return domain.ErrCoupleCodeExists
	}
	couple.ID = int64(len(f.couples) + 1)
	couple.CreatedAt = time.Now()
	couple.UpdatedAt = couple.CreatedAt
	f.couples[couple.CoupleCode] = couple
	f.created = couple
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeCoupleRepo) UpdateProfile(_ context.Context, coupleCode string, changes domain.CoupleProfileChanges) (*domain.Couple, error) {
	couple, ok := f.couples[coupleCode]
	if !ok {
		return nil, domain.ErrCoupleNotFound
	}
	if changes.Partner1Name != nil {
		couple.Partner1Name = changes.Partner1Name
	}
	if changes.Partner2Name != nil {
		couple.Partner2Name = changes.Partner2Name
	}
	if changes.StartDate != nil {
		couple.StartDate = *changes.StartDate
	}
	return couple, nil
}

func (f *fakeCoupleRepo) TouchLogin(_ context.Context, coupleCode string, entry *domain.ActivityLog) error {
	f.touched = append(f.touched, coupleCode)
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeCoupleRepo) WishStats(_ context.Context, _ string) (*domain.WishStats, error) {
	return f.stats, nil
}

func (f *fakeCoupleRepo) Delete(_ context.Context, coupleCode string) error {
	if _, ok := f.couples[coupleCode]; !ok {
		return domain.ErrCoupleNotFound
	}
	delete(f.couples, coupleCode)
	return nil
}

func newAuthService(repo *fakeCoupleRepo) *AuthService {
	tokenService := jwt.NewTokenService(
		[]byte("test-secret-do-not-use-in-prod"),
		30*24*time.Hour,
		90*24*time.Hour,
		"our-little-planet",
		"couple-users",
	)
	return NewAuthService(repo, tokenService)
}

func TestRegisterValidation(t *testing.T) {
	future := time.Now().AddDate(0, 0, 7).Format("2006-01-02")

	tests := []struct {
		name    string
		req     RegisterRequest
		wantErr error
	}{
		{
			name:    "code too short",
			req:     RegisterRequest{CoupleCode: "ab", StartDate: "2024-02-14"},
			wantErr: domain.ErrInvalidCoupleCode,
		},
		{
			name: "code too long",
			req: RegisterRequest{
				CoupleCode: strings.Repeat("x", maxCoupleCodeLen+1),
				StartDate:  "2024-02-14",
			},
			wantErr: domain.ErrCoupleCodeTooLong,
		},
		{
			name:    "malformed start date",
			req:     RegisterRequest{CoupleCode: "luna-y-sol", StartDate: "valentines day"},
			wantErr: domain.ErrInvalidStartDate,
		},
		{
			name:    "future start date",
			req:     RegisterRequest{CoupleCode: "luna-y-sol", StartDate: future},
			wantErr: domain.ErrFutureStartDate,
		},
		{
			name:    "start date older than fifty years",
			req:     RegisterRequest{CoupleCode: "luna-y-sol", StartDate: "1950-01-01"},
			wantErr: domain.ErrTooOldStartDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAuthService(newFakeCoupleRepo())
			_, err := svc.Register(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	repo := newFakeCoupleRepo()
	svc := newAuthService(repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		CoupleCode:   "  luna-y-sol  ",
		StartDate:    "2024-02-14",
		Partner1Name: strPtr("Luna"),
	})
	require.NoError(t, err)

	assert.True(t, resp.IsNewPlanet)
	assert.Equal(t, "luna-y-sol", resp.Couple.CoupleCode)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.NotEmpty(t, resp.Tokens.RefreshToken)
	assert.Equal(t, &domain.WishStats{}, resp.Stats)

	require.Len(t, repo.entries, 1)
	assert.Equal(t, domain.ActionRegister, repo.entries[0].ActionType)
}

func TestRegisterRejectsTakenCode(t *testing.T) {
	repo := newFakeCoupleRepo()
	repo.couples["luna-y-sol"] = &domain.Couple{ID: 1, CoupleCode: "luna-y-sol"}
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		CoupleCode: "luna-y-sol",
		StartDate:  "2024-02-14",
	})
	assert.ErrorIs(t, err, domain.ErrCoupleCodeExists)
}

func TestLoginExistingCouple(t *testing.T) {
	repo := newFakeCoupleRepo()
	repo.couples["luna-y-sol"] = &domain.Couple{
		ID:         1,
		CoupleCode: "luna-y-sol",
		StartDate:  time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
	}
	repo.stats = &domain.WishStats{Total: 5, Completed: 2, Pending: 3, CompletionRate: 40}
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{CoupleCode: "luna-y-sol"})
	require.NoError(t, err)

	assert.False(t, resp.IsNewPlanet)
	assert.Equal(t, repo.stats, resp.Stats)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.Equal(t, []string{"luna-y-sol"}, repo.touched)
}

func TestLoginAutoRegistersUnusedCode(t *testing.T) {
	repo := newFakeCoupleRepo()
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{CoupleCode: "luna-y-sol"})
	require.NoError(t, err)

	// First login with an unused code creates the couple, anchored to
	// today.
	assert.True(t, resp.IsNewPlanet)
	require.NotNil(t, repo.created)
	assert.Equal(t, "luna-y-sol", repo.created.CoupleCode)
	assert.Equal(t, time.Now().Format("2006-01-02"), repo.created.StartDate.Format("2006-01-02"))
	assert.Empty(t, repo.touched)
}

func TestLoginRejectsShortCode(t *testing.T) {
	svc := newAuthService(newFakeCoupleRepo())

	_, err := svc.Login(context.Background(), LoginRequest{CoupleCode: "ab"})
	assert.ErrorIs(t, err, domain.ErrInvalidCoupleCode)
}

func TestRefreshRoundtrip(t *testing.T) {
	repo := newFakeCoupleRepo()
	svc := newAuthService(repo)

	reg, err := svc.Register(context.Background(), RegisterRequest{
		CoupleCode: "luna-y-sol",
		StartDate:  "2024-02-14",
	})
	require.NoError(t, err)

	resp, err := svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	repo := newFakeCoupleRepo()
	svc := newAuthService(repo)

	reg, err := svc.Register(context.Background(), RegisterRequest{
		CoupleCode: "luna-y-sol",
		StartDate:  "2024-02-14",
	})
	require.NoError(t, err)

	// An access token can never be exchanged as if it were a refresh
	// token; every refresh failure maps to the same opaque error.
	_, err = svc.Refresh(context.Background(), reg.Tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newFakeCoupleRepo()
	repo.couples["luna-y-sol"] = &domain.Couple{
		ID:           1,
		CoupleCode:   "luna-y-sol",
		StartDate:    time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
		Partner1Name: strPtr("Luna"),
	}
	svc := newAuthService(repo)

	dto, err := svc.UpdateProfile(context.Background(), "luna-y-sol", UpdateProfileRequest{
		Partner2Name: strPtr("Sol"),
	})
	require.NoError(t, err)

	require.NotNil(t, dto.Partner1Name)
	assert.Equal(t, "Luna", *dto.Partner1Name)
	require.NotNil(t, dto.Partner2Name)
	assert.Equal(t, "Sol", *dto.Partner2Name)
}

func TestUpdateProfileRequiresAtLeastOneField(t *testing.T) {
	svc := newAuthService(newFakeCoupleRepo())

	_, err := svc.UpdateProfile(context.Background(), "luna-y-sol", UpdateProfileRequest{})
	assert.ErrorIs(t, err, domain.ErrNoUpdateFields)

	// Whitespace-only names normalize to nil and count as absent.
	_, err = svc.UpdateProfile(context.Background(), "luna-y-sol", UpdateProfileRequest{
		Partner1Name: strPtr("   "),
	})
	assert.ErrorIs(t, err, domain.ErrNoUpdateFields)
}
