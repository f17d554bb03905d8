package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// User is an identity allowed to mutate records.
type User struct {
	Username     string
	PasswordHash []byte
}

// UserStore looks up identities by username. The server seeds a single admin
// account, but middleware and handlers only depend on this interface so a
// real multi-user store can replace it without changing the gate's contract.
type UserStore interface {
	Lookup(username string) (*User, bool)
}

// StaticUserStore is an in-memory UserStore seeded at startup.
type StaticUserStore struct {
	users map[string]*User
}

func NewStaticUserStore() *StaticUserStore {
	return &StaticUserStore{users: make(map[string]*User)}
}

// SeedAdmin hashes the configured password and registers the account.
func (s *StaticUserStore) SeedAdmin(username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	s.users[username] = &User{Username: username, PasswordHash: hash}
	return nil
}

func (s *StaticUserStore) Lookup(username string) (*User, bool) {
	u, ok := s.users[username]
	return u, ok
}

// Authenticate compares the supplied password against the stored hash.
func Authenticate(store UserStore, username, password string) (*User, error) {
	user, ok := store.Lookup(username)
	if !ok {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}
