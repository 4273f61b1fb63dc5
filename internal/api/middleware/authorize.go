package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/simpleuser/user-directory/internal/auth/policy"
	"github.com/simpleuser/user-directory/internal/core/domain"
	"github.com/simpleuser/user-directory/internal/metrics"
)

// Authorize evaluates the request against the static access policy after the
// identity filter has run. Denials surface as domain errors so the central
// error handler renders them with the right status and generic reason text.
func Authorize(p *policy.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			decision := p.Evaluate(c.Request().Method, c.Request().URL.Path, IdentityFrom(c))
			metrics.AuthzDecisionsTotal.WithLabelValues(decision.String()).Inc()

			switch decision {
			case policy.Allow:
				return next(c)
			case policy.Unauthenticated:
				return domain.ErrUnauthenticated
			default:
				return domain.ErrForbidden
			}
		}
	}
}
