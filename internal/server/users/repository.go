package users

import "context"

// Repository stores user records. Create must be atomic with respect to the
// username uniqueness check: concurrent creates of the same username resolve
// to exactly one success, the rest fail with common.ErrAlreadyExists.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}
