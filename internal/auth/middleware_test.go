package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/night-assist/assist-service/internal/domain"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

func newGuardApp(guard *Guard, allowed ...domain.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
				"code":    de.Code,
				"message": de.Message,
			}})
		},
	})
	app.Get("/protected", guard.RequireRoles(allowed...), func(c *fiber.Ctx) error {
		claims, ok := ClaimsFromContext(c)
		if !ok {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"subject": claims.SubjectID, "role": claims.Role})
	})
	return app
}

func issueToken(t *testing.T, tm *TokenManager, role domain.Role) string {
	t.Helper()
	tokenStr, _, err := tm.Issue("p-1", "someone", role)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	return tokenStr
}

func TestGuardRejectsUnauthenticatedRequests(t *testing.T) {
	tm := NewTokenManager("guard-secret", 60)
	otherSecret := NewTokenManager("another-secret", 60)
	app := newGuardApp(NewGuard(tm), domain.RoleAdmin)

	expired := func() string {
		claims := &Claims{
			SubjectID: "p-1",
			Role:      domain.RoleAdmin,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("guard-secret"))
		if err != nil {
			t.Fatalf("signing: %v", err)
		}
		return s
	}()

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not a bearer scheme", "Basic dXNlcjpwYXNz"},
		{"bearer with empty token", "Bearer "},
		{"garbage token", "Bearer not.a.jwt"},
		{"wrong secret", "Bearer " + issueToken(t, otherSecret, domain.RoleAdmin)},
		{"expired token", "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != http.StatusUnauthorized {
				t.Errorf("Expected 401, got %d", resp.StatusCode)
			}
		})
	}
}

func TestGuardEnforcesRoleAllowList(t *testing.T) {
	tm := NewTokenManager("guard-secret", 60)
	guard := NewGuard(tm)

	tests := []struct {
		name    string
		allowed []domain.Role
		role    domain.Role
		status  int
	}{
		{"admin admitted to admin route", []domain.Role{domain.RoleAdmin}, domain.RoleAdmin, http.StatusOK},
		{"citizen rejected from admin route", []domain.Role{domain.RoleAdmin}, domain.RoleCitizen, http.StatusForbidden},
		{"citizen admitted to shared route", []domain.Role{domain.RoleCitizen, domain.RoleAdmin}, domain.RoleCitizen, http.StatusOK},
		{"empty allow-list admits citizen", nil, domain.RoleCitizen, http.StatusOK},
		{"empty allow-list admits admin", nil, domain.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newGuardApp(guard, tt.allowed...)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+issueToken(t, tm, tt.role))
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("app.Test: %v", err)
			}
			if resp.StatusCode != tt.status {
				t.Errorf("Expected %d, got %d", tt.status, resp.StatusCode)
			}
		})
	}
}

func TestGuardAcceptsLowercaseBearerScheme(t *testing.T) {
	tm := NewTokenManager("guard-secret", 60)
	app := newGuardApp(NewGuard(tm), domain.RoleCitizen)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer "+issueToken(t, tm, domain.RoleCitizen))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 for lowercase scheme, got %d", resp.StatusCode)
	}
}

func TestClaimsFromContextMissing(t *testing.T) {
	app := fiber.New()
	app.Get("/open", func(c *fiber.Ctx) error {
		if _, ok := ClaimsFromContext(c); ok {
			t.Error("claims should be absent on unguarded routes")
		}
		return c.SendStatus(http.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200, got %d", resp.StatusCode)
	}
}
