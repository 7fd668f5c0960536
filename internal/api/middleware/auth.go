package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/evotodo/todo-backend/internal/api/metrics"
	"github.com/evotodo/todo-backend/internal/core/domain"
)

// identityKey is the context key under which the verified identity is stored.
const identityKey = "identity"

// errMissingTenant is returned when a structurally valid token carries no
// tenant claim. The tenant must be explicit; there is no default.
var errMissingTenant = errors.New("token missing tenant claim")

// Auth validates the bearer token and injects the verified identity into the
// request context. Tokens must be HS256-signed with the shared secret and
// carry an expiry; the tenant is read from the "sub" claim or the legacy
// "userId" claim. Every protected route runs this before anything else — no
// handler may substitute a tenant identifier that did not pass through here.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_header").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("bad_scheme").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			ident, err := identityFromClaims(claims)
			if err != nil {
				metrics.AuthFailuresTotal.WithLabelValues("missing_tenant").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
			}

			c.Set(identityKey, ident)
			return next(c)
		}
	}
}

func identityFromClaims(claims jwt.MapClaims) (*domain.Identity, error) {
	tenant, _ := claims["sub"].(string)
	if tenant == "" {
		tenant, _ = claims["userId"].(string)
	}
	if tenant == "" {
		return nil, errMissingTenant
	}

	ident := &domain.Identity{TenantID: tenant}
	if email, ok := claims["email"].(string); ok {
		ident.Email = email
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		ident.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		ident.ExpiresAt = exp.Time
	}
	return ident, nil
}

// IdentityFromContext returns the identity injected by Auth, or nil when the
// middleware has not run on this request.
func IdentityFromContext(c echo.Context) *domain.Identity {
	ident, _ := c.Get(identityKey).(*domain.Identity)
	return ident
}
