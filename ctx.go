package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

var claimsCtxKey = &contextKey{"claims"}

type contextKey struct {
	name string
}

// WithClaimsContext sets the AuthClaims in the given context
func WithClaimsContext(r context.Context, claims AuthClaims) context.Context {
	return context.WithValue(r, claimsCtxKey, claims)
}

// GetClaims extracts the AuthClaims from the standard context
func GetClaims(ctx context.Context) (AuthClaims, bool) {
	raw, ok := ctx.Value(claimsCtxKey).(AuthClaims)
	return raw, ok
}

// GetSession extracts the decoded session the authentication gate attached
// to the request, if any. It checks fiber Locals first and falls back to
// claims carried on the request context, so code holding only the context
// sees the same session. A missing session means the caller is anonymous.
func GetSession(c *fiber.Ctx, key string) (*SessionObject, error) {
	raw := c.Locals(key)
	if raw == nil {
		if claims, ok := GetClaims(c.UserContext()); ok {
			return sessionFromAuthClaims(claims)
		}
		return nil, ErrUnableToFindSession
	}

	claims, ok := raw.(AuthClaims)
	if !ok {
		return nil, ErrUnableToDecodeSession
	}

	return sessionFromAuthClaims(claims)
}

// HasSession reports whether the gate attached a decoded session
func HasSession(c *fiber.Ctx, key string) bool {
	_, err := GetSession(c, key)
	return err == nil
}
