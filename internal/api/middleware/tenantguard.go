package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evotodo/todo-backend/internal/api/metrics"
	"github.com/evotodo/todo-backend/internal/core/domain"
)

// TenantGuard verifies that the tenant addressed by the URL matches the
// verified token identity. The :user_id path segment is attacker-controlled
// and exists only for routing; it must never reach a storage query, and a
// request addressing a tenant other than the token's is rejected here,
// before any storage call. Comparison is byte-exact: no case folding, no
// normalization.
func TenantGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := IdentityFromContext(c)
			if ident == nil {
				// Reaching here without Auth having run is a wiring bug;
				// fail closed.
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			if c.Param("user_id") != ident.TenantID {
				metrics.TenantMismatchTotal.Inc()
				return domain.ErrForbidden
			}

			return next(c)
		}
	}
}
