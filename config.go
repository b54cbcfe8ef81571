package auth

import (
	"fmt"
	"os"
	"strconv"
)

// AppConfig holds the settings the authenticator and the HTTP layer need.
// The signing key has no default; a missing key is a startup error rather
// than a silently shared fallback secret.
type AppConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
}

func (c AppConfig) GetSigningKey() string   { return c.SigningKey }
func (c AppConfig) GetContextKey() string   { return c.ContextKey }
func (c AppConfig) GetTokenExpiration() int { return c.TokenExpiration }
func (c AppConfig) GetIssuer() string       { return c.Issuer }

func (c AppConfig) GetSigningMethod() string {
	if c.SigningMethod == "" {
		return "HS256"
	}
	return c.SigningMethod
}

func (c AppConfig) GetAudience() []string {
	return c.Audience
}

func (c AppConfig) Validate() error {
	if c.SigningKey == "" {
		return fmt.Errorf("auth config: signing key is required")
	}
	if c.ContextKey == "" {
		return fmt.Errorf("auth config: context key is required")
	}
	return nil
}

// ConfigFromEnv builds an AppConfig from AUTH_* environment variables.
// AUTH_SIGNING_KEY is required.
func ConfigFromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		SigningKey:      os.Getenv("AUTH_SIGNING_KEY"),
		SigningMethod:   getenv("AUTH_SIGNING_METHOD", "HS256"),
		ContextKey:      getenv("AUTH_CONTEXT_KEY", "authToken"),
		TokenExpiration: getenvInt("AUTH_TOKEN_EXPIRATION", 24),
		Issuer:          getenv("AUTH_ISSUER", "stateless-auth"),
		Audience:        []string{getenv("AUTH_AUDIENCE", "stateless-auth")},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getenvInt(key string, def int) int {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return i
}

var _ Config = AppConfig{}
