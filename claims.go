package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents structured JWT claims carrying the identity snapshot
type AuthClaims interface {
	Subject() string
	UserID() string
	Email() string
	FullName() string
	Role() string
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims. The profile
// fields are a snapshot of the user record at issuance time; later changes
// to the stored record are not reflected in outstanding tokens.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID         string `json:"uid,omitempty"`
	GivenName   string `json:"first_name,omitempty"`
	FamilyName  string `json:"last_name,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dob,omitempty"`
	UserEmail   string `json:"email,omitempty"`
	UserRole    string `json:"role,omitempty"`
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID
func (c *JWTClaims) UserID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.Subject()
}

// Email returns the email captured at issuance
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// FullName returns the display name captured at issuance
func (c *JWTClaims) FullName() string {
	return strings.TrimSpace(c.GivenName + " " + c.FamilyName)
}

// Role returns the global role
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// HasRole checks if the user has a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// IsAtLeast checks if the user's role is at least the minimum required role
func (c *JWTClaims) IsAtLeast(minRole string) bool {
	return UserRole(c.UserRole).IsAtLeast(UserRole(minRole))
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
