package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/evotodo/todo-backend/internal/core/domain"
)

func guardContext(pathTenant string, ident *domain.Identity) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("user_id")
	c.SetParamValues(pathTenant)
	if ident != nil {
		c.Set(identityKey, ident)
	}
	return c
}

func TestTenantGuard_Match(t *testing.T) {
	c := guardContext("alice", &domain.Identity{TenantID: "alice"})

	called := false
	handler := TenantGuard()(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestTenantGuard_Mismatch(t *testing.T) {
	c := guardContext("bob", &domain.Identity{TenantID: "alice"})

	handler := TenantGuard()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTenantGuard_CaseSensitive(t *testing.T) {
	// Tenant ids are opaque strings; "Alice" and "alice" are different
	// tenants and no normalization is applied.
	c := guardContext("Alice", &domain.Identity{TenantID: "alice"})

	handler := TenantGuard()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestTenantGuard_MissingIdentity(t *testing.T) {
	c := guardContext("alice", nil)

	handler := TenantGuard()(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}
