package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/eventopia-server/internal/model"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = time.Hour

const (
	claimExpiresAt = "exp"
	claimIssuedAt  = "iat"
)

// ErrEmptySecret is returned when no signing secret is configured.
var ErrEmptySecret = errors.New("token signing secret is empty")

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a token manager signing with the provided secret key.
// A non-positive ttl falls back to DefaultTTL.
func NewJWT(secretKey string, ttl time.Duration) (*JWT, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWT{secretKey: []byte(secretKey), ttl: ttl, now: time.Now}, nil
}

// Issue signs the principal's claims together with an expiry of ttl from now.
func (j *JWT) Issue(principal model.Principal) (string, error) {
	if len(j.secretKey) == 0 {
		return "", ErrEmptySecret
	}
	if name, ok := principal.ReservedClaim(); ok {
		return "", fmt.Errorf("claim %q is reserved", name)
	}

	now := j.now()
	claims := jwt.MapClaims(principal.AsMap())
	claims[claimIssuedAt] = jwt.NewNumericDate(now)
	claims[claimExpiresAt] = jwt.NewNumericDate(now.Add(j.ttl))

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature and expiry and returns the claims the token was issued with.
func (j *JWT) Verify(tokenString string) (model.Principal, error) {
	if strings.TrimSpace(tokenString) == "" {
		return model.Principal{}, model.ErrTokenMissing
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Principal{}, fmt.Errorf("%w: %v", model.ErrTokenExpired, err)
		}
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	}

	delete(claims, claimExpiresAt)
	delete(claims, claimIssuedAt)

	principal, err := model.PrincipalFromMap(claims)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %v", model.ErrTokenInvalid, err)
	}
	return principal, nil
}
