package auth_test

import (
	"context"

	"github.com/gofiber/fiber/v2"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/stretchr/testify/mock"

	auth "github.com/mitesh1409/stateless-auth"
)

// TestIdentity is a simple implementation of Identity interface for testing
type TestIdentity struct {
	id          string
	firstName   string
	lastName    string
	gender      string
	dateOfBirth string
	email       string
	role        string
}

func (t TestIdentity) ID() string          { return t.id }
func (t TestIdentity) FirstName() string   { return t.firstName }
func (t TestIdentity) LastName() string    { return t.lastName }
func (t TestIdentity) Gender() string      { return t.gender }
func (t TestIdentity) DateOfBirth() string { return t.dateOfBirth }
func (t TestIdentity) Email() string       { return t.email }
func (t TestIdentity) Role() string        { return t.role }

func newTestConfig() *auth.AppConfig {
	return &auth.AppConfig{
		SigningKey:      "test-signing-key",
		ContextKey:      "authToken",
		TokenExpiration: 24,
		Issuer:          "test-issuer",
		Audience:        []string{"test:audience"},
	}
}

// MockIdentityProvider implements auth.IdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (auth.Identity, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

func (m *MockIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (auth.Identity, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

// MockAuthenticator implements auth.Authenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, identifier, password string) (string, error) {
	args := m.Called(ctx, identifier, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) TokenForUser(ctx context.Context, identifier string) (string, error) {
	args := m.Called(ctx, identifier)
	return args.String(0), args.Error(1)
}

func (m *MockAuthenticator) SessionFromToken(token string) (auth.Session, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Session), args.Error(1)
}

func (m *MockAuthenticator) IdentityFromSession(ctx context.Context, session auth.Session) (auth.Identity, error) {
	args := m.Called(ctx, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(auth.Identity), args.Error(1)
}

// MockRegistrar implements the controller's Registrar dependency
type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) Execute(ctx context.Context, event auth.RegisterUserMessage) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// MockUserStore implements auth.UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*auth.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

// MockHTTPAuthenticator implements auth.HTTPAuthenticator
type MockHTTPAuthenticator struct {
	mock.Mock
}

func (m *MockHTTPAuthenticator) Login(c *fiber.Ctx, payload auth.LoginPayload) error {
	args := m.Called(payload.GetIdentifier(), payload.GetPassword())
	return args.Error(0)
}

func (m *MockHTTPAuthenticator) Logout(c *fiber.Ctx) {
	m.Called()
}

// MockLoginPayload implements auth.LoginPayload
type MockLoginPayload struct {
	Identifier string
	Password   string
}

func (m MockLoginPayload) GetIdentifier() string { return m.Identifier }
func (m MockLoginPayload) GetPassword() string   { return m.Password }
