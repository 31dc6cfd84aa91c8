// Package auth issues and verifies HS256 tokens guarding mutating API operations.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	apierr "github.com/autoserve/autoserve/pkg/api/types/errors"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
}

// NewJWS signs a token for subject, valid until exp.
func NewJWS(signKey string, subject string, exp time.Time) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	return tok.SignedString([]byte(signKey))
}

// VerifyJWS verifies a token and returns its claims.
//
// Returns ErrInvalidToken (wrapping the cause) when the token is malformed,
// forged or expired.
func VerifyJWS(signKey string, token string) (*Claims, error) {
	claims := new(Claims)
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("%w: unexpected alg: %s", ErrInvalidToken, t.Method.Alg())
		}
		return []byte(signKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) ||
			errors.Is(err, jwt.ErrSignatureInvalid) ||
			errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Join(ErrInvalidToken, err)
		}
		return nil, err
	}
	if c, ok := tok.Claims.(*Claims); ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: unexpected claims type: %T", ErrInvalidToken, tok.Claims)
}

// Middleware rejects requests without a valid bearer token.
//
// With an empty signKey, the guard is disabled and all requests pass.
func Middleware(signKey string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if signKey == "" {
			return next
		}
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, found := strings.CutPrefix(header, "Bearer ")
			if !found {
				return apierr.Unauthorized("set bearer token in Authorization header", nil)
			}
			claims, err := VerifyJWS(signKey, token)
			if err != nil {
				if errors.Is(err, ErrInvalidToken) {
					return apierr.Unauthorized("token is rejected. get a new one", err)
				}
				return apierr.InternalServerError(err)
			}
			c.Set("subject", claims.Subject)
			return next(c)
		}
	}
}
