package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/evotodo/todo-backend/internal/api/middleware"
	"github.com/evotodo/todo-backend/internal/core/domain"
)

// ctxIdentity extracts the verified identity injected by the Auth middleware.
// Presence proves the middleware ran; a protected handler reached without it
// is a wiring bug and must fail closed with 401, never fall through to a
// storage call.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	ident := middleware.IdentityFromContext(c)
	if ident == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return ident, nil
}
