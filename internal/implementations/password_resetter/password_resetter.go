package passwordresetter

import (
	"authd/internal/core/domain/user"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

var saltChars = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// HMAC issues stateless password reset tokens. A token is the URL-safe base64
// of "timestamp-salt-mac-email"; the email goes last because it may itself
// contain dashes. The mac covers timestamp, salt and email, so altering any
// field invalidates the token.
type HMAC struct {
	secretKey     []byte
	validDuration time.Duration
	now           func() time.Time
}

func NewHMAC(secretKey string, validDuration time.Duration, now func() time.Time) *HMAC {
	return &HMAC{
		secretKey:     []byte(secretKey),
		validDuration: validDuration,
		now:           now,
	}
}

func (h *HMAC) GenerateToken(email user.Email) user.PasswordResetToken {
	nowTs := h.now().Unix()
	salt := h.getRandomSalt()
	mac := h.getMac(nowTs, salt, email)
	b64 := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf("%d-%s-%s-%s", nowTs, salt, mac, email)))
	return user.PasswordResetToken(b64)
}

func (h *HMAC) ValidateToken(token user.PasswordResetToken) (email user.Email, ok bool) {
	decodedToken, err := base64.RawURLEncoding.DecodeString(string(token))
	if err != nil {
		return email, false
	}
	parts := strings.SplitN(string(decodedToken), "-", 4)
	if len(parts) != 4 {
		return email, false
	}
	ts, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return email, false
	}
	actualDuration := time.Duration(h.now().Unix()-ts) * time.Second
	if actualDuration > h.validDuration {
		return email, false
	}
	salt := parts[1]
	mac := parts[2]
	subject := user.Email(parts[3])
	expectedMac := h.getMac(ts, salt, subject)
	if subtle.ConstantTimeCompare([]byte(mac), []byte(expectedMac)) != 1 {
		return email, false
	}
	return subject, true
}

func (h *HMAC) getMac(ts int64, salt string, email user.Email) string {
	hasher := hmac.New(sha256.New, h.secretKey)
	io.WriteString(hasher, fmt.Sprintf("%d-%s-%s", ts, salt, email))
	return fmt.Sprintf("%x", hasher.Sum(nil))
}

func (h *HMAC) getRandomSalt() string {
	b := make([]rune, 5)
	for i := range b {
		b[i] = saltChars[rand.Intn(len(saltChars))]
	}
	return string(b)
}
