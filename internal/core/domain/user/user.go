package user

import "time"

type ID int64

// Email is kept exactly as submitted, the store treats it case-sensitively.
type Email string

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type User struct {
	ID           ID
	Email        Email
	PasswordHash PasswordHash
	CreatedAt    time.Time
}
