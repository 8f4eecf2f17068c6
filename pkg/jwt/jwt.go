package jwt

import (
	"errors"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ourlittleplanet/planet-service/internal/domain"
)

var (
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrWrongTokenType       = errors.New("wrong token type")
)

// TokenService issues and verifies the couple bearer credentials. The
// signing secret is loaded once at startup and never mutated.
type TokenService struct {
	secret        []byte
	accessExpiry  time.Duration
	refreshExpiry time.Duration
	issuer        string
	audience      string
}

func NewTokenService(secret []byte, accessExpiry, refreshExpiry time.Duration, issuer, audience string) *TokenService {
	return &TokenService{
		secret:        secret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
		issuer:        issuer,
		audience:      audience,
	}
}

// GenerateTokenPair issues an access token and a refresh token for the
// given couple. The refresh token carries fewer claims and may only be
// exchanged for a new access token.
func (s *TokenService) GenerateTokenPair(coupleCode string, coupleID int64) (*domain.TokenPair, error) {
	now := time.Now()
	accessExp := now.Add(s.accessExpiry)

	accessToken, err := s.sign(domain.Claims{
		RegisteredClaims: s.registered(now, accessExp),
		CoupleCode:       coupleCode,
		CoupleID:         coupleID,
		TokenType:        domain.TokenTypeAccess,
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.sign(domain.Claims{
		RegisteredClaims: s.registered(now, now.Add(s.refreshExpiry)),
		CoupleCode:       coupleCode,
		TokenType:        domain.TokenTypeRefresh,
	})
	if err != nil {
		return nil, err
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
		TokenType:    "Bearer",
	}, nil
}

// RefreshAccessToken exchanges a valid refresh token for a new access
// token. Any other token class is rejected.
func (s *TokenService) RefreshAccessToken(refreshToken string) (string, time.Time, error) {
	claims, err := s.ValidateToken(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		return "", time.Time{}, err
	}

	now := time.Now()
	exp := now.Add(s.accessExpiry)
	token, err := s.sign(domain.Claims{
		RegisteredClaims: s.registered(now, exp),
		CoupleCode:       claims.CoupleCode,
		CoupleID:         claims.CoupleID,
		TokenType:        domain.TokenTypeAccess,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

// ValidateToken parses and verifies a token and checks its class.
// Expired and malformed tokens are logged but both come back as plain
// errors: callers treat every failure as "unauthenticated".
func (s *TokenService) ValidateToken(tokenString, wantType string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSigningMethod
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithAudience(s.audience))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Printf("[JWT] token expired")
		}
		return nil, err
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != wantType {
		log.Printf("[JWT] unexpected token type: %s", claims.TokenType)
		return nil, ErrWrongTokenType
	}

	return claims, nil
}

func (s *TokenService) registered(now, exp time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}
}

func (s *TokenService) sign(claims domain.Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
