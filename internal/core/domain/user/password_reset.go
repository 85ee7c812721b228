package user

import "context"

type PasswordResetToken string

// PasswordResetter mints and checks stateless signed tokens bound to an email.
// A token is valid only while its expiry window is open and its signature
// verifies against the current server secret; nothing is persisted, so expiry
// is the only invalidation mechanism and reuse of a still-valid token is
// allowed.
type PasswordResetter interface {
	GenerateToken(email Email) PasswordResetToken
	ValidateToken(token PasswordResetToken) (Email, bool)
}

type PasswordResetTokenSender interface {
	SendToken(ctx context.Context, email Email, token PasswordResetToken) error
}
