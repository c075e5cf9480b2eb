package user

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound         = errors.New("user: not found")
	ErrIDRequired       = errors.New("user: id is required")
	ErrEmailRequired    = errors.New("user: email is required")
	ErrNameRequired     = errors.New("user: name is required")
	ErrEmailAlreadyUsed = errors.New("user: email already registered")
)

type ID string

type User struct {
	ID           ID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*User, error)
	ByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, u *User) error
}
