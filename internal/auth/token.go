// Package auth issues and verifies bearer session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"artspace/internal/config"
	"artspace/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is stamped into every token and required on verification.
const Issuer = "artspace-api"

// UserLookup resolves a token subject to a live user. Implementations must
// read the primary store, not a cache, and return a NOT_FOUND AppError for
// missing or soft-deleted users.
type UserLookup interface {
	GetLiveByID(ctx context.Context, id uint) (*models.User, error)
}

// TokenService signs and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
	now    func() time.Time
}

// NewTokenService builds a TokenService from the signing key and TTL in cfg.
func NewTokenService(cfg *config.Config, users UserLookup) *TokenService {
	ttl := cfg.TokenTTL()
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		users:  users,
		now:    time.Now,
	}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue creates a signed token for userID and returns it with its expiry.
func (s *TokenService) Issue(userID uint) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("JWT secret not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		Issuer:    Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", models.NewUnauthorizedError("Authorization header required")
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !ok || token == "" || strings.Contains(token, " ") {
		return "", models.NewUnauthorizedError("Invalid authorization header format")
	}
	return token, nil
}

// ParseSubject checks the signature, issuer and expiry of tokenString and
// returns the user ID it was issued for.
func (s *TokenService) ParseSubject(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, models.NewUnauthorizedError("Token has expired")
		}
		return 0, models.NewUnauthorizedError("Invalid token")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, models.NewUnauthorizedError("Invalid user ID in token")
	}
	return uint(userID), nil
}

// Verify authenticates an Authorization header and resolves it to a live user.
// A token for a missing or soft-deleted account is rejected even before expiry.
func (s *TokenService) Verify(ctx context.Context, authorization string) (*models.User, error) {
	tokenString, err := BearerToken(authorization)
	if err != nil {
		return nil, err
	}

	userID, err := s.ParseSubject(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetLiveByID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewUnauthorizedError("Invalid user")
		}
		return nil, err
	}
	if user == nil || user.DeletedAt.Valid {
		return nil, models.NewUnauthorizedError("Invalid user")
	}
	return user, nil
}
