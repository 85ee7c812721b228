package passwordhasher

import (
	"authd/internal/core/domain/user"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

type Bcrypt struct {
	secret string
	cost   int
}

func NewBcrypt(secret string, cost int) *Bcrypt {
	return &Bcrypt{secret: secret, cost: cost}
}

func (h *Bcrypt) HashPassword(password user.RawPassword) (hash user.PasswordHash, err error) {
	bcryptHash, err := bcrypt.GenerateFromPassword(h.preHash(password), h.cost)
	if err != nil {
		return hash, err
	}
	return user.PasswordHash(bcryptHash), nil
}

func (h *Bcrypt) ValidatePassword(password user.RawPassword, hash user.PasswordHash) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), h.preHash(password))
	return err == nil
}

// bcrypt only looks at the first 72 bytes of its input, so password+secret is
// folded through SHA-256 first. The hex digest is 64 bytes, which keeps the
// whole password and the secret significant at any length.
func (h *Bcrypt) preHash(password user.RawPassword) []byte {
	digest := sha256.Sum256([]byte(string(password) + h.secret))
	return []byte(hex.EncodeToString(digest[:]))
}
