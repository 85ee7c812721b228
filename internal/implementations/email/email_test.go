package email

import (
	"authd/internal/core/domain/user"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSender(t *testing.T, baseURL string) *SMTPSender {
	u, err := url.Parse(baseURL)
	require.Nil(t, err)
	return NewSMTPSender(
		"smtp.example.test",
		587,
		"mailer@example.test",
		"test-password",
		"noreply@example.test",
		*u,
		time.Second,
	)
}

func TestResetLink(t *testing.T) {
	type test struct {
		id       string
		baseURL  string
		token    user.PasswordResetToken
		expected string
	}
	cases := []test{
		{
			id:       "plain",
			baseURL:  "https://example.test/reset-password",
			token:    "test-token",
			expected: "https://example.test/reset-password?token=test-token",
		},
		{
			id:       "tokenIsQueryEscaped",
			baseURL:  "https://example.test/reset-password",
			token:    "a+b c&d=e",
			expected: "https://example.test/reset-password?token=a%2Bb+c%26d%3De",
		},
		{
			id:       "baseURLWithQuery",
			baseURL:  "https://example.test/reset-password?lang=en",
			token:    "test-token",
			expected: "https://example.test/reset-password?lang=en&token=test-token",
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			sender := newTestSender(t, testcase.baseURL)

			link := sender.resetLink(testcase.token)

			require.Equal(t, testcase.expected, link)
		})
	}
}

func TestResetLinkDoesNotMutateBaseURL(t *testing.T) {
	sender := newTestSender(t, "https://example.test/reset-password")

	sender.resetLink("first-token")
	link := sender.resetLink("second-token")

	require.Equal(t, "https://example.test/reset-password?token=second-token", link)
}
