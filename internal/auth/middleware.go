package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/night-assist/assist-service/internal/domain"
	apperrors "github.com/night-assist/assist-service/pkg/util"
)

const claimsKey = "auth_claims"

// Guard is the request gate for protected routes. It is a pure function
// of the bearer token, the route's allow-list, the server secret and the
// clock: it holds no per-request state and never touches storage, so a
// deleted principal's still-valid token is accepted until expiry.
type Guard struct {
	tokens *TokenManager
}

// NewGuard constructs the guard around a token manager.
func NewGuard(tokens *TokenManager) *Guard {
	return &Guard{tokens: tokens}
}

// RequireRoles returns a handler admitting only requests whose verified
// token carries one of the allowed roles. An empty allow-list admits any
// authenticated principal. Rejections are terse and uniform: every
// authentication failure maps to 401 without distinguishing missing,
// malformed, forged or expired tokens; a wrong role maps to 403.
func (g *Guard) RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		claims, err := g.authenticate(c)
		if err != nil {
			return err
		}

		if len(allowedSet) > 0 {
			if _, ok := allowedSet[claims.Role]; !ok {
				return apperrors.NewForbidden("insufficient permissions")
			}
		}

		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

func (g *Guard) authenticate(c *fiber.Ctx) (*Claims, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, apperrors.NewUnauthorized("authorization failed")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return nil, apperrors.NewUnauthorized("authorization failed")
	}

	claims, err := g.tokens.Parse(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("authorization failed")
	}
	return claims, nil
}

// ClaimsFromContext retrieves the claims attached by the guard. Handlers
// read these as-is and must not re-verify them.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	val := c.Locals(claimsKey)
	if val == nil {
		return nil, false
	}
	claims, ok := val.(*Claims)
	return claims, ok
}
