package email

import (
	"authd/internal/core/domain/user"
	"context"
	"fmt"
	"net/url"
	"time"

	"gopkg.in/gomail.v2"
)

// SMTPSender delivers password reset links over SMTP. The dialer upgrades the
// connection with STARTTLS when the server advertises it (the usual case on
// port 587) and authenticates with the configured credentials.
type SMTPSender struct {
	dialer               *gomail.Dialer
	sender               string
	passwordResetBaseURL url.URL
	sendTimeout          time.Duration
}

func NewSMTPSender(
	host string,
	port int,
	username string,
	password string,
	sender string,
	passwordResetBaseURL url.URL,
	sendTimeout time.Duration,
) *SMTPSender {
	return &SMTPSender{
		dialer:               gomail.NewDialer(host, port, username, password),
		sender:               sender,
		passwordResetBaseURL: passwordResetBaseURL,
		sendTimeout:          sendTimeout,
	}
}

func (s *SMTPSender) SendToken(ctx context.Context, email user.Email, token user.PasswordResetToken) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.sender)
	m.SetHeader("To", string(email))
	m.SetHeader("Subject", "Password Reset Link")
	m.SetBody("text/plain", fmt.Sprintf("Click the link to reset your password:\n%s", s.resetLink(token)))

	ctx, cancel := context.WithTimeout(ctx, s.sendTimeout)
	defer cancel()

	// gomail is not context-aware, the send is bounded here so a stalled SMTP
	// server cannot hang the reset-request flow.
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("%w: %v", user.ErrTokenDeliveryFailed, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", user.ErrTokenDeliveryFailed, ctx.Err())
	}
}

func (s *SMTPSender) resetLink(token user.PasswordResetToken) string {
	u := s.passwordResetBaseURL
	q := u.Query()
	q.Set("token", string(token))
	u.RawQuery = q.Encode()
	return u.String()
}
