package users

import (
	"context"
)

// Repository stores users. Lookups return common.ErrorNotFound when nothing
// matches; Create returns common.ErrorAlreadyExists when the email or phone
// is already taken.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	GetUserByLogin(ctx context.Context, login string) (*User, error)
	Update(ctx context.Context, user *User) error
}
