package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simpleuser/user-directory/internal/auth/token"
	"github.com/simpleuser/user-directory/internal/metrics"
)

const identityKey = "auth.identity"

// Identity extracts and verifies the bearer token, if any, and attaches the
// resulting identity to the request context. It never rejects a request:
// missing, malformed, badly signed, or expired tokens all simply leave the
// request unauthenticated, and the authorization middleware decides later
// whether that matters for the target.
func Identity(codec *token.Codec) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			id, err := codec.ParseAndVerify(parts[1], time.Now())
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyResult(err)).Inc()
				return next(c)
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(identityKey, &id)
			return next(c)
		}
	}
}

// IdentityFrom returns the verified identity for this request, or nil when
// the request is unauthenticated.
func IdentityFrom(c echo.Context) *token.Identity {
	id, _ := c.Get(identityKey).(*token.Identity)
	return id
}

func verifyResult(err error) string {
	switch {
	case errors.Is(err, token.ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, token.ErrExpired):
		return "expired"
	default:
		return "malformed"
	}
}
