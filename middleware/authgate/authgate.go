package authgate

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
)

var defaultCookieName = "authToken"
var defaultContextKey = "authToken"

// TokenValidator interface for validating tokens without import cycles.
// This mirrors the TokenService.Validate method from the auth package.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims interface for structured claims without import cycles.
// This mirrors the AuthClaims interface from the auth package.
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	FullName() string
	Role() string
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
}

// InvalidTokenPolicy decides what happens to a request carrying a token
// that fails validation.
type InvalidTokenPolicy int

const (
	// TreatAsAnonymous drops the bad token and lets the request continue
	// without a session. Protected handlers see an anonymous caller.
	TreatAsAnonymous InvalidTokenPolicy = iota
	// RejectRequest hands the validation error to the ErrorHandler.
	RejectRequest
)

type Config struct {
	Filter         func(*fiber.Ctx) bool
	ErrorHandler   fiber.ErrorHandler
	CookieName     string
	ContextKey     string
	OnInvalidToken InvalidTokenPolicy

	// TokenValidator is required for token validation
	TokenValidator TokenValidator

	// ContextEnricher is an optional function to propagate claims to the
	// standard Go context after successful validation.
	ContextEnricher func(ctx context.Context, claims AuthClaims) context.Context
}

// New returns a handler that decodes the session cookie on every request.
// Requests without a cookie pass through anonymously; what happens to an
// invalid token is decided by OnInvalidToken.
func New(config ...Config) fiber.Handler {
	cfg := GetDefaultConfig(config...)

	return func(c *fiber.Ctx) error {
		if cfg.Filter != nil && cfg.Filter(c) {
			return c.Next()
		}

		raw := c.Cookies(cfg.CookieName)
		if raw == "" {
			return c.Next()
		}

		claims, err := cfg.TokenValidator.Validate(raw)
		if err != nil {
			if cfg.OnInvalidToken == RejectRequest {
				return cfg.ErrorHandler(c, err)
			}
			log.Printf("authgate: dropping invalid token: %v", err)
			return c.Next()
		}

		c.Locals(cfg.ContextKey, claims)

		if cfg.ContextEnricher != nil {
			c.SetUserContext(cfg.ContextEnricher(c.UserContext(), claims))
		}

		return c.Next()
	}
}

func GetDefaultConfig(config ...Config) Config {
	var cfg Config
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.TokenValidator == nil {
		panic("authgate: TokenValidator is required")
	}

	if cfg.CookieName == "" {
		cfg.CookieName = defaultCookieName
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = defaultContextKey
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = func(c *fiber.Ctx, err error) error {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
	}

	return cfg
}

// RequireRole guards a route behind a minimum role. Anonymous callers get
// a 401, authenticated callers below the minimum get a 403.
func RequireRole(contextKey, minRole string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals(contextKey)
		if raw == nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		claims, ok := raw.(AuthClaims)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}

		if !claims.IsAtLeast(minRole) {
			return c.SendStatus(fiber.StatusForbidden)
		}

		return c.Next()
	}
}
