// Package authtoken mints and verifies the HS256 bearer tokens that carry a
// caller's user id to the trial service.
package authtoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/platform/id"
	"github.com/louisbranch/mocktrial/internal/platform/requestctx"
)

// DefaultIssuer names tokens minted by this module.
const DefaultIssuer = "mocktrial"

// minSecretLength is the shortest accepted HMAC secret in bytes.
const minSecretLength = 16

// Config defines how tokens are signed and checked.
type Config struct {
	Secret []byte
	Issuer string
	Now    func() time.Time
}

// Validate checks that the config can sign and verify tokens.
func (c Config) Validate() error {
	if len(c.Secret) < minSecretLength {
		return fmt.Errorf("token secret must be at least %d bytes", minSecretLength)
	}
	if strings.TrimSpace(c.Issuer) == "" {
		return errors.New("token issuer is required")
	}
	return nil
}

func (c Config) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now().UTC()
}

// Mint signs a token for userID valid for ttl.
func Mint(cfg Config, userID string, ttl time.Duration) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("user id is required")
	}
	if ttl <= 0 {
		return "", errors.New("token ttl must be positive")
	}
	jti, err := id.NewID()
	if err != nil {
		return "", err
	}
	now := cfg.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Subject:   userID,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	signed, err := token.SignedString(cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks a token and returns the caller it names.
func Verify(raw string, cfg Config) (requestctx.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return requestctx.Principal{}, apperrors.New(apperrors.CodeUnauthenticated, "access token is required")
	}
	if err := cfg.Validate(); err != nil {
		return requestctx.Principal{}, err
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		return cfg.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(cfg.now),
	)
	if err != nil {
		return requestctx.Principal{}, mapJWTError(err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return requestctx.Principal{}, apperrors.New(apperrors.CodeUnauthenticated, "access token has no subject")
	}
	return requestctx.Principal{
		UserID:    claims.Subject,
		Issuer:    claims.Issuer,
		ExpiresAt: claims.ExpiresAt.Time.UTC(),
	}, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.CodeUnauthenticated, "access token is expired", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeUnauthenticated, "access token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return apperrors.Wrap(apperrors.CodeUnauthenticated, "access token issuer mismatch", err)
	default:
		return apperrors.Wrap(apperrors.CodeUnauthenticated, "access token is invalid", err)
	}
}
