package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token types carried in the "type" claim. A refresh token can only be
// exchanged for a new access token; it never authorizes data access.
const (
	TokenTypeAccess  = "couple_access"
	TokenTypeRefresh = "refresh_token"
)

// TokenPair is the credential set handed out on login/register.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	TokenType    string    `json:"tokenType"`
}

// Claims is the JWT payload: the couple code it asserts, the couple's
// row id at issue time, and the token class.
type Claims struct {
	jwt.RegisteredClaims
	CoupleCode string `json:"coupleCode"`
	CoupleID   int64  `json:"coupleId,omitempty"`
	TokenType  string `json:"type"`
}
