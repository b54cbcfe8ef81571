package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the user model. Created on sign-up, read during sign-in and
// administrative token issuance; the password is stored only as a one-way
// bcrypt hash.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Gender        string     `bun:"gender,notnull" json:"gender,omitempty"`
	DateOfBirth   string     `bun:"dob,notnull" json:"dob,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"password_hash,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// FullName returns the display name used by the dashboard
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
