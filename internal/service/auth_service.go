package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ourlittleplanet/planet-service/internal/domain"
	"github.com/ourlittleplanet/planet-service/internal/repository"
	"github.com/ourlittleplanet/planet-service/pkg/jwt"
)

const (
	dateLayout       = "2006-01-02"
	minCoupleCodeLen = 4
	maxCoupleCodeLen = 50
	maxStartDateAge  = 50 // years
)

type AuthService struct {
	coupleRepo   repository.CoupleRepository
	tokenService *jwt.TokenService
}

func NewAuthService(coupleRepo repository.CoupleRepository, tokenService *jwt.TokenService) *AuthService {
	return &AuthService{
		coupleRepo:   coupleRepo,
		tokenService: tokenService,
	}
}

type RegisterRequest struct {
	CoupleCode   string  `json:"coupleCode" validate:"required"`
	StartDate    string  `json:"startDate" validate:"required"`
	Partner1Name *string `json:"partner1Name" validate:"omitempty,max=50"`
	Partner2Name *string `json:"partner2Name" validate:"omitempty,max=50"`
}

type LoginRequest struct {
	CoupleCode string `json:"coupleCode" validate:"required"`
}

type CoupleDTO struct {
	ID           int64     `json:"id"`
	CoupleCode   string    `json:"coupleCode"`
	StartDate    string    `json:"startDate"`
	Partner1Name *string   `json:"partner1Name"`
	Partner2Name *string   `json:"partner2Name"`
	DaysTogether int       `json:"daysTogether"`
	CreatedAt    time.Time `json:"createdAt"`
}

type AuthResponse struct {
	Couple      *CoupleDTO        `json:"couple"`
	Stats       *domain.WishStats `json:"stats"`
	Tokens      *domain.TokenPair `json:"tokens"`
	IsNewPlanet bool              `json:"isNewPlanet"`
}

type RefreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// Register creates a new couple for an unused code and hands out the
// first token pair.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	code, err := normalizeCoupleCode(req.CoupleCode)
	if err != nil {
		return nil, err
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		return nil, err
	}

	couple := &domain.Couple{
		CoupleCode:   code,
		StartDate:    startDate,
		Partner1Name: trimOptional(req.Partner1Name),
		Partner2Name: trimOptional(req.Partner2Name),
	}

	entry := &domain.ActivityLog{
		CoupleCode:  code,
		ActionType:  domain.ActionRegister,
		Description: "created a new little planet",
	}

	if err := s.coupleRepo.Create(ctx, couple, entry); err != nil {
		return nil, err
	}

	tokens, err := s.tokenService.GenerateTokenPair(couple.CoupleCode, couple.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &AuthResponse{
		Couple:      coupleDTO(couple),
		Stats:       &domain.WishStats{},
		Tokens:      tokens,
		IsNewPlanet: true,
	}, nil
}

// Login exchanges a couple code for a token pair. An unused code
// auto-registers a new couple anchored to today, so the first login and
// registration are the same gesture.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	code, err := normalizeCoupleCode(req.CoupleCode)
	if err != nil {
		return nil, err
	}

	couple, err := s.coupleRepo.GetByCode(ctx, code)
	if err != nil {
		if de, ok := domain.AsError(err); ok && de == domain.ErrCoupleNotFound {
			log.Printf("[AUTH] unused couple code, auto-registering new planet")
			return s.Register(ctx, RegisterRequest{
				CoupleCode: code,
				StartDate:  time.Now().Format(dateLayout),
			})
		}
		return nil, err
	}

	entry := &domain.ActivityLog{
		CoupleCode:  code,
		ActionType:  domain.ActionLogin,
		Description: "signed in to the little planet",
	}
	if err := s.coupleRepo.TouchLogin(ctx, code, entry); err != nil {
		return nil, err
	}

	stats, err := s.coupleRepo.WishStats(ctx, code)
	if err != nil {
		return nil, err
	}

	tokens, err := s.tokenService.GenerateTokenPair(couple.CoupleCode, couple.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	return &AuthResponse{
		Couple: coupleDTO(couple),
		Stats:  stats,
		Tokens: tokens,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*RefreshResponse, error) {
	token, expiresAt, err := s.tokenService.RefreshAccessToken(refreshToken)
	if err != nil {
		log.Printf("[AUTH] refresh rejected: %v", err)
		return nil, domain.ErrInvalidToken
	}

	return &RefreshResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		TokenType:   "Bearer",
	}, nil
}

type UpdateProfileRequest struct {
	Partner1Name *string `json:"partner1Name" validate:"omitempty,max=50"`
	Partner2Name *string `json:"partner2Name" validate:"omitempty,max=50"`
	StartDate    *string `json:"startDate"`
}

// UpdateProfile changes only the fields present in the request.
func (s *AuthService) UpdateProfile(ctx context.Context, coupleCode string, req UpdateProfileRequest) (*CoupleDTO, error) {
	changes := domain.CoupleProfileChanges{
		Partner1Name: trimOptional(req.Partner1Name),
		Partner2Name: trimOptional(req.Partner2Name),
	}

	if req.StartDate != nil {
		startDate, err := parseStartDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		changes.StartDate = &startDate
	}

	if changes.Empty() {
		return nil, domain.ErrNoUpdateFields
	}

	couple, err := s.coupleRepo.UpdateProfile(ctx, coupleCode, changes)
	if err != nil {
		return nil, err
	}

	return coupleDTO(couple), nil
}

func normalizeCoupleCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) < minCoupleCodeLen {
		return "", domain.ErrInvalidCoupleCode
	}
	if len(code) > maxCoupleCodeLen {
		return "", domain.ErrCoupleCodeTooLong
	}
	return code, nil
}

func parseStartDate(value string) (time.Time, error) {
	startDate, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, domain.ErrInvalidStartDate
	}

	now := time.Now()
	if startDate.After(now) {
		return time.Time{}, domain.ErrFutureStartDate
	}
	if startDate.Before(now.AddDate(-maxStartDateAge, 0, 0)) {
		return time.Time{}, domain.ErrTooOldStartDate
	}

	return startDate, nil
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func coupleDTO(couple *domain.Couple) *CoupleDTO {
	return &CoupleDTO{
		ID:           couple.ID,
		CoupleCode:   couple.CoupleCode,
		StartDate:    couple.StartDate.Format(dateLayout),
		Partner1Name: couple.Partner1Name,
		Partner2Name: couple.Partner2Name,
		DaysTogether: couple.DaysTogether(time.Now()),
		CreatedAt:    couple.CreatedAt,
	}
}
