package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken indicates the token failed signature, structure or expiry checks
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims are the claims carried by every issued bearer token
type TokenClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 signed bearer tokens
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with a static process wide secret
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime
func (t *TokenService) TTL() time.Duration {
	return t.ttl
}

// Issue signs a token carrying the user identity, stamped with
// issued-at and expiry
func (t *TokenService) Issue(userID uint, email string, isAdmin bool) (string, error) {
	now := time.Now().UTC()
	claims := TokenClaims{
		UserID:  userID,
		Email:   email,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks structure, signature and expiry, returning the claims.
// The signature comparison is constant time inside the jwt library.
func (t *TokenService) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	parsed, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
