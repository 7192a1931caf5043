package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/miniapartment/e2e/internal/errs"
	"github.com/miniapartment/e2e/internal/rental"
)

// Token lifetimes.
const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenPair is the login response payload of the REST API.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Claims are the verified contents of an access token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// TokenService issues and verifies HS256 JWTs.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service with the signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// IssuePair mints an access/refresh token pair for a user.
func (s *TokenService) IssuePair(user rental.User) (TokenPair, error) {
	access, err := s.sign(user, "access", AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(user, "refresh", RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) sign(user rental.User, use string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  user.Role,
		"use":   use,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errs.Wrap(errs.Internal, "sign token", err)
	}
	return token, nil
}

// VerifyAccess validates an access token and returns its claims.
func (s *TokenService) VerifyAccess(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.New(errs.Unauthenticated, "unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Claims{}, errs.New(errs.Unauthenticated, "invalid or expired token")
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errs.New(errs.Unauthenticated, "invalid token claims")
	}
	if use, _ := mc["use"].(string); use != "access" {
		return Claims{}, errs.New(errs.Unauthenticated, "token is not an access token")
	}
	sub, _ := mc["sub"].(string)
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)
	if sub == "" || role == "" {
		return Claims{}, errs.New(errs.Unauthenticated, "invalid token claims")
	}
	return Claims{UserID: sub, Email: email, Role: role}, nil
}
