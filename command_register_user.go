package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

type RegisterUserMessage struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dob"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Password    string `json:"password"`
	UseHashid   bool
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// RegisterUserHandler hashes the password and persists the user record
// inside a single transaction. The plaintext password never reaches the
// store.
type RegisterUserHandler struct {
	repo RepositoryManager
}

func NewRegisterUserHandler(repo RepositoryManager) *RegisterUserHandler {
	return &RegisterUserHandler{repo: repo}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("context cancelled during user registration: %w", ctx.Err())
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	user := &User{}
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		hash, err := HashPassword(event.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		user.PasswordHash = hash
		user.Email = event.Email
		user.FirstName = event.FirstName
		user.LastName = event.LastName
		user.Gender = event.Gender
		user.DateOfBirth = event.DateOfBirth
		user.Role = UserRole(event.Role)
		if event.UseHashid {
			if id, err := hashid.NewUUID(event.Email); err == nil {
				user.ID = id
			}
		}

		if user, err = h.repo.Users().CreateTx(ctx, tx, user); err != nil {
			return fmt.Errorf("could not create user: %w", err)
		}

		return nil
	})

	if err != nil {
		return fmt.Errorf("user registration transaction failed: %w", err)
	}

	return nil
}
