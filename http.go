package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieAuthenticator carries session tokens over an HTTP-only cookie
type CookieAuthenticator struct {
	auth           Authenticator
	cfg            Config
	cookieDuration time.Duration
	Logger         Logger
}

func NewHTTPAuthenticator(auther Authenticator, cfg Config) (*CookieAuthenticator, error) {
	cookieDuration := 24 * time.Hour
	if cfg.GetTokenExpiration() > 0 {
		cookieDuration = time.Duration(cfg.GetTokenExpiration()) * time.Hour
	}

	return &CookieAuthenticator{
		cfg:            cfg,
		auth:           auther,
		Logger:         defLogger{},
		cookieDuration: cookieDuration,
	}, nil
}

func (a *CookieAuthenticator) WithLogger(l Logger) *CookieAuthenticator {
	a.Logger = l
	return a
}

func (a CookieAuthenticator) GetCookieDuration() time.Duration {
	return a.cookieDuration
}

// Login verifies the payload's credentials and, on success, sets the
// session cookie on the response.
func (a *CookieAuthenticator) Login(c *fiber.Ctx, payload LoginPayload) error {
	token, err := a.auth.Login(c.Context(), payload.GetIdentifier(), payload.GetPassword())
	if err != nil {
		a.Logger.Error("Login error: %s", err)
		return err
	}

	a.setCookieToken(c, token, a.cookieDuration)
	return nil
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side revocation.
func (a *CookieAuthenticator) Logout(c *fiber.Ctx) {
	a.cookieDel(c, a.cfg.GetContextKey())
}

func (a *CookieAuthenticator) setCookieToken(c *fiber.Ctx, val string, duration time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     a.cfg.GetContextKey(),
		Value:    val,
		Expires:  time.Now().Add(duration),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

func (a *CookieAuthenticator) cookieDel(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour * (24 * 365)),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

var _ HTTPAuthenticator = (*CookieAuthenticator)(nil)
