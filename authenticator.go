package auth

import (
	"context"
	"reflect"
)

type Auther struct {
	provider     IdentityProvider
	signingKey   []byte
	issuer       string
	audience     []string
	logger       Logger
	tokenService TokenService
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetSigningMethod(),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		signingKey:   []byte(opts.GetSigningKey()),
		audience:     opts.GetAudience(),
		issuer:       opts.GetIssuer(),
		logger:       defLogger{},
		tokenService: tokenService,
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the given credentials and issues a signed session token
// holding a snapshot of the identity.
func (s *Auther) Login(ctx context.Context, identifier, password string) (string, error) {
	var err error
	var identity Identity

	if identity, err = s.provider.VerifyIdentity(ctx, identifier, password); err != nil {
		s.logger.Error("Login verify identity error: %s", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("Login identity is nil or zero value")
		return "", ErrIdentityNotFound
	}

	return s.tokenService.Generate(identity)
}

// TokenForUser mints a fresh session token for the user behind the given
// identifier without checking credentials. Callers are responsible for
// authorizing access to this operation.
func (s *Auther) TokenForUser(ctx context.Context, identifier string) (string, error) {
	var err error
	var identity Identity

	if identity, err = s.provider.FindIdentityByIdentifier(ctx, identifier); err != nil {
		s.logger.Error("TokenForUser find identity error: %s", err)
		return "", err
	}

	if identity == nil || reflect.ValueOf(identity).IsZero() {
		s.logger.Error("TokenForUser identity is nil")
		return "", ErrIdentityNotFound
	}

	return s.tokenService.Generate(identity)
}

func (s *Auther) IdentityFromSession(ctx context.Context, session Session) (Identity, error) {
	identity, err := s.provider.FindIdentityByIdentifier(ctx, session.GetUserID())
	if err != nil {
		s.logger.Error("IdentityFromSession find identity by identifier: %s", err)
		return nil, err
	}

	return identity, nil
}

func (s Auther) SessionFromToken(raw string) (Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		if IsMalformedError(err) {
			s.logger.Warn("SessionFromToken rejected malformed token: %s", err)
		} else {
			s.logger.Error("SessionFromToken validation failed: %s", err)
		}
		return nil, err
	}

	session, err := sessionFromAuthClaims(claims)
	if err != nil {
		s.logger.Error("SessionFromToken failed to create session from claims: %s", err)
		return nil, err
	}

	return session, nil
}
