package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inkwell/blog-api/internal/core/domain"
)

const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 100 * 24 * time.Hour
)

// TokenConfig holds the signing material for both token classes.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// JWTIssuer signs HS256 tokens carrying domain.Claims.
type JWTIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

type tokenClaims struct {
	UserID int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func NewTokenIssuer(cfg TokenConfig) (*JWTIssuer, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token issuer: access and refresh secrets are required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &JWTIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}, nil
}

// Issue signs claims with secret; the token expires ttl from now.
func (t *JWTIssuer) Issue(claims domain.Claims, secret []byte, ttl time.Duration) (string, error) {
	now := t.now()
	tc := tokenClaims{
		UserID: claims.ID,
		Name:   claims.Name,
		Email:  claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(claims.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(secret)
}

func (t *JWTIssuer) IssuePair(claims domain.Claims) (domain.TokenPair, error) {
	access, err := t.Issue(claims, t.accessSecret, t.accessTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := t.Issue(claims, t.refreshSecret, t.refreshTTL)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (t *JWTIssuer) ParseAccess(token string) (domain.Claims, error) {
	return t.parse(token, t.accessSecret)
}

func (t *JWTIssuer) ParseRefresh(token string) (domain.Claims, error) {
	return t.parse(token, t.refreshSecret)
}

func (t *JWTIssuer) parse(token string, secret []byte) (domain.Claims, error) {
	var tc tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return domain.Claims{ID: tc.UserID, Name: tc.Name, Email: tc.Email}, nil
}
