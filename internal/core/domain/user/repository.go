package user

import (
	"context"
	"time"
)

type CreateUserInput struct {
	Email        Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

type UserRepository interface {
	Create(ctx context.Context, input CreateUserInput) (User, error)
	GetByEmail(ctx context.Context, email Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}
