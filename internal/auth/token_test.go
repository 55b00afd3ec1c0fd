package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/night-assist/assist-service/internal/domain"
)

func TestIssueAndParseRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	tests := []struct {
		name  string
		id    string
		label string
		role  domain.Role
	}{
		{"citizen token", "c-1", "jane@example.com", domain.RoleCitizen},
		{"admin token", "a-1", "root", domain.RoleAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenStr, expiresAt, err := tm.Issue(tt.id, tt.label, tt.role)
			if err != nil {
				t.Fatalf("Issue returned error: %v", err)
			}
			if tokenStr == "" {
				t.Fatal("Issue returned empty token")
			}
			if time.Until(expiresAt) <= 0 {
				t.Error("expiry should be in the future")
			}

			claims, err := tm.Parse(tokenStr)
			if err != nil {
				t.Fatalf("Parse returned error: %v", err)
			}
			if claims.SubjectID != tt.id {
				t.Errorf("Expected subject '%s', got '%s'", tt.id, claims.SubjectID)
			}
			if claims.SubjectLabel != tt.label {
				t.Errorf("Expected label '%s', got '%s'", tt.label, claims.SubjectLabel)
			}
			if claims.Role != tt.role {
				t.Errorf("Expected role '%s', got '%s'", tt.role, claims.Role)
			}
		})
	}
}

func TestParseIsIdempotent(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	tokenStr, _, err := tm.Issue("c-1", "jane@example.com", domain.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	first, err := tm.Parse(tokenStr)
	if err != nil {
		t.Fatalf("first Parse returned error: %v", err)
	}
	second, err := tm.Parse(tokenStr)
	if err != nil {
		t.Fatalf("second Parse returned error: %v", err)
	}
	if first.SubjectID != second.SubjectID || first.Role != second.Role {
		t.Error("repeated parses of the same token should yield identical claims")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	tokenStr, _, err := issuer.Issue("c-1", "jane@example.com", domain.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Parse(tokenStr); err == nil {
		t.Error("token signed with a different secret should be rejected")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	claims := &Claims{
		SubjectID:    "c-1",
		SubjectLabel: "jane@example.com",
		Role:         domain.RoleCitizen,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "c-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := tm.Parse(tokenStr); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestParseRejectsUnknownRole(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	claims := &Claims{
		SubjectID:    "c-1",
		SubjectLabel: "jane@example.com",
		Role:         domain.Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "c-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := tm.Parse(tokenStr); err == nil {
		t.Error("token with an unrecognized role should be rejected")
	}
}

func TestParseRejectsUnexpectedSigningMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		SubjectID: "c-1",
		Role:      domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenStr, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := tm.Parse(tokenStr); err == nil {
		t.Error("unsigned token should be rejected")
	}
}

func TestDefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	_, expiresAt, err := tm.Issue("c-1", "jane@example.com", domain.RoleCitizen)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	remaining := time.Until(expiresAt)
	if remaining < 59*time.Minute || remaining > 61*time.Minute {
		t.Errorf("expected roughly one hour default TTL, got %s", remaining)
	}
}
