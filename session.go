package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var _ Session = &SessionObject{}

// SessionObject is the per-request identity snapshot decoded from a token.
// It is rebuilt from scratch on every request and never persisted.
type SessionObject struct {
	UserID         string         `json:"user_id,omitempty"`
	FirstName      string         `json:"first_name,omitempty"`
	LastName       string         `json:"last_name,omitempty"`
	Gender         string         `json:"gender,omitempty"`
	DateOfBirth    string         `json:"dob,omitempty"`
	Email          string         `json:"email,omitempty"`
	Audience       []string       `json:"audience,omitempty"`
	Issuer         string         `json:"issuer,omitempty"`
	IssuedAt       *time.Time     `json:"issued_at,omitempty"`
	ExpirationDate *time.Time     `json:"expiration_date,omitempty"`
	Data           map[string]any `json:"data,omitempty"`
}

func (s *SessionObject) GetUserID() string {
	return s.UserID
}

func (s *SessionObject) GetUserUUID() (uuid.UUID, error) {
	return uuid.Parse(s.UserID)
}

func (s *SessionObject) GetFullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

func (s *SessionObject) GetEmail() string {
	return s.Email
}

func (s *SessionObject) GetAudience() []string {
	return s.Audience
}

func (s *SessionObject) GetIssuer() string {
	return s.Issuer
}

func (s *SessionObject) GetIssuedAt() *time.Time {
	return s.IssuedAt
}

func (s *SessionObject) GetData() map[string]any {
	return s.Data
}

// GetRole retrieves the role from session data with fallback to guest
func (s *SessionObject) GetRole() UserRole {
	if s.Data != nil {
		if roleData, exists := s.Data["role"]; exists {
			if roleStr, ok := roleData.(string); ok {
				if role, valid := ParseRole(roleStr); valid {
					return role
				}
			}
		}
	}
	return RoleGuest
}

// IsAtLeast checks if the session's role is at least the minimum required role
func (s *SessionObject) IsAtLeast(minRole UserRole) bool {
	return s.GetRole().IsAtLeast(minRole)
}

func (s SessionObject) String() string {
	issuedAt := "<nil>"
	if s.IssuedAt != nil {
		issuedAt = s.IssuedAt.Format(time.RFC1123)
	}
	return fmt.Sprintf(
		"user=%s aud=%v iss=%s iat=%s data=%v",
		s.UserID,
		s.Audience,
		s.Issuer,
		issuedAt,
		s.Data,
	)
}

// sessionFromAuthClaims creates a SessionObject from the AuthClaims interface
func sessionFromAuthClaims(claims AuthClaims) (*SessionObject, error) {
	if claims == nil {
		return nil, ErrUnableToParseData
	}

	data := make(map[string]any)
	data["role"] = claims.Role()

	session := &SessionObject{
		UserID: claims.UserID(),
		Email:  claims.Email(),
		Data:   data,
	}

	issuedAt := claims.IssuedAt()
	expiresAt := claims.Expires()
	session.IssuedAt = &issuedAt
	session.ExpirationDate = &expiresAt

	if jwtClaims, ok := claims.(*JWTClaims); ok {
		session.FirstName = jwtClaims.GivenName
		session.LastName = jwtClaims.FamilyName
		session.Gender = jwtClaims.Gender
		session.DateOfBirth = jwtClaims.DateOfBirth
		session.Issuer = jwtClaims.RegisteredClaims.Issuer
		for _, aud := range jwtClaims.RegisteredClaims.Audience {
			session.Audience = append(session.Audience, aud)
		}
	}

	if session.Issuer == "" {
		session.Issuer = claims.Subject()
	}

	return session, nil
}
