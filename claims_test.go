package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	auth "github.com/mitesh1409/stateless-auth"
)

func TestJWTClaims_Accessors(t *testing.T) {
	now := time.Now()
	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "subject-id",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		UID:         "user-id",
		GivenName:   "Jane",
		FamilyName:  "Doe",
		Gender:      "female",
		DateOfBirth: "1990-05-20",
		UserEmail:   "jane@example.com",
		UserRole:    "admin",
	}

	assert.Equal(t, "subject-id", claims.Subject())
	assert.Equal(t, "user-id", claims.UserID())
	assert.Equal(t, "jane@example.com", claims.Email())
	assert.Equal(t, "Jane Doe", claims.FullName())
	assert.Equal(t, "admin", claims.Role())
	assert.WithinDuration(t, now, claims.IssuedAt(), time.Second)
	assert.WithinDuration(t, now.Add(time.Hour), claims.Expires(), time.Second)
}

func TestJWTClaims_UserIDFallsBackToSubject(t *testing.T) {
	claims := &auth.JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "subject-id"},
	}
	assert.Equal(t, "subject-id", claims.UserID())
}

func TestJWTClaims_FullName(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		last     string
		expected string
	}{
		{"both parts", "Jane", "Doe", "Jane Doe"},
		{"first only", "Jane", "", "Jane"},
		{"last only", "", "Doe", "Doe"},
		{"empty", "", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			claims := &auth.JWTClaims{GivenName: tc.first, FamilyName: tc.last}
			assert.Equal(t, tc.expected, claims.FullName())
		})
	}
}

func TestJWTClaims_Roles(t *testing.T) {
	claims := &auth.JWTClaims{UserRole: "admin"}

	assert.True(t, claims.HasRole("admin"))
	assert.False(t, claims.HasRole("owner"))

	assert.True(t, claims.IsAtLeast("guest"))
	assert.True(t, claims.IsAtLeast("member"))
	assert.True(t, claims.IsAtLeast("admin"))
	assert.False(t, claims.IsAtLeast("owner"))
	assert.False(t, claims.IsAtLeast("no-such-role"))
}

func TestJWTClaims_ZeroTimes(t *testing.T) {
	claims := &auth.JWTClaims{}
	assert.True(t, claims.Expires().IsZero())
	assert.True(t, claims.IssuedAt().IsZero())
}
