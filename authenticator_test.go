package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auth "github.com/mitesh1409/stateless-auth"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)
	authenticator := auth.NewAuthenticator(mockProvider, newTestConfig())

	t.Run("successful login issues a signed token", func(t *testing.T) {
		identity := testIdentity()

		mockProvider.On("VerifyIdentity", ctx, "jane@example.com", "password123").
			Return(identity, nil).Once()

		token, err := authenticator.Login(ctx, "jane@example.com", "password123")

		require.NoError(t, err)
		require.NotEmpty(t, token)

		parsed, err := jwt.ParseWithClaims(token, &auth.JWTClaims{}, func(t *jwt.Token) (any, error) {
			return []byte("test-signing-key"), nil
		})
		require.NoError(t, err)
		require.True(t, parsed.Valid)

		claims, ok := parsed.Claims.(*auth.JWTClaims)
		require.True(t, ok)
		assert.Equal(t, identity.ID(), claims.Subject())
		assert.Equal(t, "test-issuer", claims.RegisteredClaims.Issuer)
		assert.Equal(t, jwt.ClaimStrings{"test:audience"}, claims.RegisteredClaims.Audience)
		assert.Equal(t, "member", claims.UserRole)
		assert.Equal(t, "jane@example.com", claims.UserEmail)

		mockProvider.AssertExpectations(t)
	})

	t.Run("failed login surfaces the provider error", func(t *testing.T) {
		mockProvider.On("VerifyIdentity", ctx, "bad@example.com", "wrongpassword").
			Return(nil, auth.ErrMismatchedHashAndPassword).Once()

		token, err := authenticator.Login(ctx, "bad@example.com", "wrongpassword")

		require.Error(t, err)
		assert.Empty(t, token)
		assert.ErrorIs(t, err, auth.ErrMismatchedHashAndPassword)
	})

	t.Run("nil identity without error is rejected", func(t *testing.T) {
		mockProvider.On("VerifyIdentity", ctx, "ghost@example.com", "password123").
			Return(nil, nil).Once()

		token, err := authenticator.Login(ctx, "ghost@example.com", "password123")

		require.ErrorIs(t, err, auth.ErrIdentityNotFound)
		assert.Empty(t, token)
	})
}

func TestTokenForUser(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)
	authenticator := auth.NewAuthenticator(mockProvider, newTestConfig())

	t.Run("mints token without credential check", func(t *testing.T) {
		identity := testIdentity()

		mockProvider.On("FindIdentityByIdentifier", ctx, identity.ID()).
			Return(identity, nil).Once()

		token, err := authenticator.TokenForUser(ctx, identity.ID())
		require.NoError(t, err)
		require.NotEmpty(t, token)

		session, err := authenticator.SessionFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, identity.ID(), session.GetUserID())
		assert.Equal(t, "Jane Doe", session.GetFullName())
	})

	t.Run("unknown identifier", func(t *testing.T) {
		mockProvider.On("FindIdentityByIdentifier", ctx, "nope").
			Return(nil, auth.ErrIdentityNotFound).Once()

		token, err := authenticator.TokenForUser(ctx, "nope")
		require.ErrorIs(t, err, auth.ErrIdentityNotFound)
		assert.Empty(t, token)
	})
}

func TestSessionFromToken(t *testing.T) {
	mockProvider := new(MockIdentityProvider)
	authenticator := auth.NewAuthenticator(mockProvider, newTestConfig())

	t.Run("round trips the identity snapshot", func(t *testing.T) {
		identity := testIdentity()
		token, err := authenticator.TokenService().Generate(identity)
		require.NoError(t, err)

		session, err := authenticator.SessionFromToken(token)
		require.NoError(t, err)

		assert.Equal(t, identity.ID(), session.GetUserID())
		assert.Equal(t, "jane@example.com", session.GetEmail())
		assert.Equal(t, "Jane Doe", session.GetFullName())
		assert.Equal(t, "test-issuer", session.GetIssuer())
		assert.Equal(t, []string{"test:audience"}, session.GetAudience())
		assert.NotNil(t, session.GetIssuedAt())
		assert.Equal(t, "member", session.GetData()["role"])

		id, err := session.GetUserUUID()
		require.NoError(t, err)
		assert.Equal(t, identity.ID(), id.String())
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		_, err := authenticator.SessionFromToken("garbage")
		require.Error(t, err)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := auth.NewTokenService(
			[]byte("test-signing-key"),
			"HS256",
			-1,
			"test-issuer",
			jwt.ClaimStrings{"test:audience"},
			nil,
		)

		token, err := expired.Generate(testIdentity())
		require.NoError(t, err)

		_, err = authenticator.SessionFromToken(token)
		require.ErrorIs(t, err, auth.ErrTokenExpired)
	})
}

func TestIdentityFromSession(t *testing.T) {
	ctx := context.Background()
	mockProvider := new(MockIdentityProvider)
	authenticator := auth.NewAuthenticator(mockProvider, newTestConfig())

	t.Run("resolves the current record behind the session", func(t *testing.T) {
		identity := testIdentity()
		session := &auth.SessionObject{UserID: identity.ID()}

		mockProvider.On("FindIdentityByIdentifier", ctx, identity.ID()).
			Return(identity, nil).Once()

		got, err := authenticator.IdentityFromSession(ctx, session)
		require.NoError(t, err)
		assert.Equal(t, identity.Email(), got.Email())
	})

	t.Run("store failure propagates", func(t *testing.T) {
		boom := errors.New("store down")
		session := &auth.SessionObject{UserID: "whoever"}

		mockProvider.On("FindIdentityByIdentifier", ctx, "whoever").
			Return(nil, boom).Once()

		_, err := authenticator.IdentityFromSession(ctx, session)
		require.ErrorIs(t, err, boom)
	})
}
