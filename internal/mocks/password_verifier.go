package mocks

import (
	"errors"
	"strings"
	"sync"

	"github.com/phrazzld/taskboard-api/internal/service/auth"
)

// ErrPasswordMismatch is returned by the password doubles on a failed compare.
var ErrPasswordMismatch = errors.New("password mismatch")

const plainHashPrefix = "plain:"

// PlainHasher implements auth.PasswordHasher without any hashing cost. The
// "hash" is the password behind a fixed prefix, so it pairs with
// PlainVerifier.
type PlainHasher struct {
	Err error
}

// Hash implements auth.PasswordHasher.
func (h *PlainHasher) Hash(password string) (string, error) {
	if h.Err != nil {
		return "", h.Err
	}
	return plainHashPrefix + password, nil
}

// PlainVerifier implements auth.PasswordVerifier for hashes made by PlainHasher.
type PlainVerifier struct{}

// Compare implements auth.PasswordVerifier.
func (PlainVerifier) Compare(hashedPassword, password string) error {
	if !strings.HasPrefix(hashedPassword, plainHashPrefix) ||
		strings.TrimPrefix(hashedPassword, plainHashPrefix) != password {
		return ErrPasswordMismatch
	}
	return nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	mu        sync.Mutex
	calls     int
	lastHash  string
	lastPlain string
}

var (
	_ auth.PasswordHasher   = (*PlainHasher)(nil)
	_ auth.PasswordVerifier = PlainVerifier{}
	_ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.mu.Lock()
	m.calls++
	m.lastHash = hashedPassword
	m.lastPlain = password
	m.mu.Unlock()

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return ErrPasswordMismatch
}

// CallCount returns how many times Compare was called.
func (m *MockPasswordVerifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastCall returns the arguments of the most recent Compare call.
func (m *MockPasswordVerifier) LastCall() (hashedPassword, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastHash, m.lastPlain
}
