package auth

import (
	"context"
	"fmt"

	"github.com/goliatone/go-repository-bun"
)

// UserStore is the slice of the credential store the provider needs
type UserStore interface {
	GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error)
}

// UserProvider resolves identities from the credential store
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	u.logger = l
	return u
}

// VerifyIdentity will find the user, compare the password, and return the
// identity. An unknown identifier and a wrong password both return
// ErrMismatchedHashAndPassword so the two cases are indistinguishable to
// the caller.
func (u UserProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrMismatchedHashAndPassword
		}
		return nil, fmt.Errorf("failed to retrieve user during verification: %w", err)
	}

	if user == nil {
		return nil, ErrMismatchedHashAndPassword
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrMismatchedHashAndPassword
	}

	return identityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without checking credentials
func (u UserProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := u.store.GetByIdentifier(ctx, identifier)
	if err != nil {
		return nil, err
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return identityFromUser(user), nil
}

type authIdentity struct {
	id          string
	firstName   string
	lastName    string
	gender      string
	dateOfBirth string
	email       string
	role        string
}

func identityFromUser(user *User) authIdentity {
	return authIdentity{
		id:          user.ID.String(),
		firstName:   user.FirstName,
		lastName:    user.LastName,
		gender:      user.Gender,
		dateOfBirth: user.DateOfBirth,
		email:       user.Email,
		role:        string(user.Role),
	}
}

func (a authIdentity) ID() string {
	return a.id
}

func (a authIdentity) FirstName() string {
	return a.firstName
}

func (a authIdentity) LastName() string {
	return a.lastName
}

func (a authIdentity) Gender() string {
	return a.gender
}

func (a authIdentity) DateOfBirth() string {
	return a.dateOfBirth
}

func (a authIdentity) Email() string {
	return a.email
}

func (a authIdentity) Role() string {
	return a.role
}

var _ Identity = authIdentity{}
