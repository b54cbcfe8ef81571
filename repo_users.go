package auth

import (
	"fmt"
	"net/mail"
	"strings"

	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the credential store access surface
type Users interface {
	repository.Repository[*User]

	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error)
}

type users struct {
	repository.Repository[*User]
	db *bun.DB
}

var (
	_ Users                        = (*users)(nil)
	_ repository.Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := repository.NewRepository[*User](db, repository.ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{
		Repository: repo,
		db:         db,
	}
}

func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	return a.CreateTx(ctx, tx, user)
}

// GetByIdentifier looks a user up by store id or email
func (a *users) GetByIdentifier(ctx context.Context, identifier string, criteria ...repository.SelectCriteria) (*User, error) {
	return a.GetByIdentifierTx(ctx, a.db, identifier, criteria...)
}

func (a *users) GetByIdentifierTx(ctx context.Context, tx bun.IDB, identifier string, criteria ...repository.SelectCriteria) (*User, error) {
	options := resolveUserIdentifier(identifier)
	if len(options) == 0 {
		options = []identifierOption{
			{
				column: "id",
				value:  strings.TrimSpace(identifier),
			},
		}
	}

	for _, opt := range options {
		record := &User{}
		q := tx.NewSelect().Model(record)

		for _, c := range criteria {
			q.Apply(c)
		}

		err := q.
			Where(fmt.Sprintf("?TableAlias.%s = ?", opt.column), opt.value).
			Limit(1).
			Scan(ctx)

		if err != nil {
			if repository.IsRecordNotFound(err) {
				continue
			}
			return nil, err
		}

		return record, nil
	}

	return nil, repository.NewRecordNotFound().
		WithMetadata(map[string]any{
			"identifier": identifier,
		})
}

func (a *users) Create(ctx context.Context, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *users) CreateTx(ctx context.Context, tx bun.IDB, record *User, criteria ...repository.InsertCriteria) (*User, error) {
	prepareUserDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleMember
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

type identifierOption struct {
	column string
	value  string
}

func resolveUserIdentifier(identifier string) []identifierOption {
	trimmed := strings.TrimSpace(identifier)
	if trimmed == "" {
		return nil
	}

	options := make([]identifierOption, 0, 2)

	if isUUID(trimmed) {
		options = append(options, identifierOption{
			column: "id",
			value:  trimmed,
		})
	}

	if isEmail(trimmed) {
		options = append(options, identifierOption{
			column: "email",
			value:  trimmed,
		})
	}

	return options
}

func isEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func isUUID(identifier string) bool {
	_, err := uuid.Parse(identifier)
	return err == nil
}
