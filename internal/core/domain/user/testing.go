package user

import (
	"context"
	"crypto/md5"
	"fmt"
	"io"
	"strings"
	"sync"
)

type FakePasswordHasher struct{}

func NewFakePasswordHasher() *FakePasswordHasher {
	return &FakePasswordHasher{}
}

func (h *FakePasswordHasher) HashPassword(password RawPassword) (PasswordHash, error) {
	hash := md5.New()
	io.WriteString(hash, string(password))
	return PasswordHash(fmt.Sprintf("%x", hash.Sum(nil))), nil
}

func (h *FakePasswordHasher) ValidatePassword(password RawPassword, hash PasswordHash) bool {
	actualHash, err := h.HashPassword(password)
	if err != nil {
		return false
	}
	return actualHash == hash
}

type FakeUserRepository struct {
	Users       []User
	ReturnError bool
	lock        sync.Mutex
}

func NewFakeUserRepository() *FakeUserRepository {
	return &FakeUserRepository{Users: make([]User, 0, 10)}
}

func (r *FakeUserRepository) Create(ctx context.Context, input CreateUserInput) (u User, err error) {
	if r.ReturnError {
		return u, fmt.Errorf("could not create user %v", input)
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, u := range r.Users {
		if u.Email == input.Email {
			return u, ErrEmailAlreadyExists
		}
		maxID = u.ID
	}
	u = User{
		ID:           maxID + 1,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    input.CreatedAt,
	}
	r.Users = append(r.Users, u)
	return u, nil
}

func (r *FakeUserRepository) GetByEmail(ctx context.Context, email Email) (u User, err error) {
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, u := range r.Users {
		if u.Email == email {
			return u, nil
		}
	}
	return u, ErrUserDoesNotExist
}

func (r *FakeUserRepository) SetPassword(ctx context.Context, id ID, password PasswordHash) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, u := range r.Users {
		if u.ID == id {
			r.Users[ix].PasswordHash = password
			return nil
		}
	}
	return ErrUserDoesNotExist
}

const fakeResetTokenPrefix = "reset-token-"

type FakePasswordResetter struct {
	IsTokenValid bool
}

func NewFakePasswordResetter() *FakePasswordResetter {
	return &FakePasswordResetter{IsTokenValid: true}
}

func (r *FakePasswordResetter) GenerateToken(email Email) PasswordResetToken {
	return PasswordResetToken(fakeResetTokenPrefix + string(email))
}

func (r *FakePasswordResetter) ValidateToken(token PasswordResetToken) (email Email, ok bool) {
	if !r.IsTokenValid {
		return email, false
	}
	if !strings.HasPrefix(string(token), fakeResetTokenPrefix) {
		return email, false
	}
	return Email(strings.TrimPrefix(string(token), fakeResetTokenPrefix)), true
}

type SentToken struct {
	Email Email
	Token PasswordResetToken
}

type FakePasswordResetTokenSender struct {
	Sent        []SentToken
	ReturnError bool
	lock        sync.Mutex
}

func NewFakePasswordResetTokenSender() *FakePasswordResetTokenSender {
	return &FakePasswordResetTokenSender{}
}

func (s *FakePasswordResetTokenSender) SendToken(ctx context.Context, email Email, token PasswordResetToken) error {
	if s.ReturnError {
		return fmt.Errorf("%w: transport is down", ErrTokenDeliveryFailed)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, SentToken{Email: email, Token: token})
	return nil
}

func (s *FakePasswordResetTokenSender) SentCount() int {
	return len(s.Sent)
}

func (s *FakePasswordResetTokenSender) LastSent() SentToken {
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
