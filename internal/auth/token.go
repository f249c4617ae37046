package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for every rejected token. Malformed,
// tampered, expired and wrong-algorithm tokens are deliberately
// indistinguishable so callers cannot be used as a validity oracle.
var ErrInvalidToken = errors.New("invalid token")

// DefaultTokenTTL is the token lifetime applied when a caller does not
// supply one. 30 minutes is the single advertised default.
const DefaultTokenTTL = 30 * time.Minute

// TokenConfig holds the signing parameters for issued tokens. It is set
// once at construction and never mutated afterwards.
type TokenConfig struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService struct {
	cfg    TokenConfig
	method jwt.SigningMethod
}

// NewTokenService validates the signing configuration and returns a token
// service. An empty secret or algorithm is a deployment error: the caller
// is expected to refuse to start.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token signing secret is required")
	}
	if cfg.Algorithm == "" {
		return nil, errors.New("token signing algorithm is required")
	}
	method := jwt.GetSigningMethod(cfg.Algorithm)
	if method == nil {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", cfg.Algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm: %s", cfg.Algorithm)
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTokenTTL
	}
	if cfg.TTL < 0 {
		return nil, errors.New("token TTL must be positive")
	}
	return &TokenService{cfg: cfg, method: method}, nil
}

// Issue creates a signed token for subject expiring at now+ttl. A zero ttl
// means "use the configured default". A negative ttl yields a token that is
// already expired.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = s.cfg.TTL
	}
	now := time.Now()
	token := jwt.NewWithClaims(s.method, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString and returns the
// embedded subject. Every failure mode collapses to ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) {
			return []byte(s.cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{s.cfg.Algorithm}),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
