package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists        = errors.New("email already exists")
	ErrUserDoesNotExist          = errors.New("user does not exist")
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidPasswordResetToken = errors.New("invalid password reset token")
	ErrTokenDeliveryFailed       = errors.New("could not deliver password reset token")
)
