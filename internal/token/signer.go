package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-music-api/internal/model"
)

// Claims is the validated claim set extracted from a signed token.
type Claims struct {
	UserID    string
	Issuer    string
	Audience  string
	ExpiresAt time.Time
}

// Signer mints and validates the two token classes. Access and refresh
// tokens use distinct symmetric keys so a token of one class can never
// validate as the other, and compromise of one key is bounded to its class.
type Signer struct {
	issuer     string
	audience   string
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Config struct {
	Issuer     string
	Audience   string
	AccessKey  string
	RefreshKey string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func NewSigner(cfg Config) (*Signer, error) {
	if cfg.Issuer == "" || cfg.Audience == "" {
		return nil, fmt.Errorf("token signer requires issuer and audience")
	}
	if cfg.AccessKey == "" || cfg.RefreshKey == "" {
		return nil, fmt.Errorf("token signer requires both signing keys")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("token TTLs must be positive")
	}

	return &Signer{
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		accessKey:  []byte(cfg.AccessKey),
		refreshKey: []byte(cfg.RefreshKey),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}, nil
}

func (s *Signer) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *Signer) RefreshTTL() time.Duration {
	return s.refreshTTL
}

func (s *Signer) IssueAccessToken(userID string) (string, error) {
	return s.issue(userID, s.accessKey, s.accessTTL)
}

func (s *Signer) IssueRefreshToken(userID string) (string, error) {
	return s.issue(userID, s.refreshKey, s.refreshTTL)
}

func (s *Signer) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.accessKey)
}

func (s *Signer) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return s.validate(tokenString, s.refreshKey)
}

func (s *Signer) issue(userID string, key []byte, ttl time.Duration) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    s.issuer,
		Audience:  jwt.ClaimStrings{s.audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		// jti keeps two tokens minted in the same second distinct, which
		// the exact-match rotation check depends on.
		ID: uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (s *Signer) validate(tokenString string, key []byte) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return nil, classifyValidationError(err)
	}

	registered, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return nil, model.ErrInvalidToken
	}

	claims := &Claims{
		UserID: registered.Subject,
		Issuer: registered.Issuer,
	}
	if len(registered.Audience) > 0 {
		claims.Audience = registered.Audience[0]
	}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Time
	}

	return claims, nil
}

// classifyValidationError maps jwt/v5 parse errors onto the typed outcomes
// callers branch on. An expired-but-well-signed token reports expiry, never
// a signature failure: the library only runs claim validation after the
// signature checks out, so ErrTokenExpired implies a valid signature.
func classifyValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return model.ErrIssuerMismatch
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return model.ErrAudienceMismatch
	default:
		return model.ErrInvalidToken
	}
}
