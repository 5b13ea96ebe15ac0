// Package resetcode manages the short-lived numeric codes used to reset a
// forgotten password.
//
// Two requests for the same email race with last-write-wins semantics, and a
// verify running next to a generate may see either code. Codes are single-user
// secrets delivered out of band, so no locking is done.
package resetcode

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
)

const (
	CodeTTL    = 15 * time.Minute
	CodeDigits = 6

	keyPrefix = "password_reset:"
	// decoyKey sits outside keyPrefix, so it never shadows an account's code.
	decoyKey = "password_reset_decoy"
)

var codeSpace = big.NewInt(1_000_000)

type Manager struct {
	store    Store
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithGenerator replaces the random code source.
func WithGenerator(gen func() (string, error)) Option {
	return func(m *Manager) { m.generate = gen }
}

func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		ttl:      CodeTTL,
		now:      time.Now,
		generate: RandomCode,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RandomCode returns a uniformly random code in 000000..999999.
func RandomCode() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", CodeDigits, n.Int64()), nil
}

func key(email string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(email))
}

func (m *Manager) TTL() time.Duration { return m.ttl }

// GenerateCode creates a fresh code for email, replacing any live one.
func (m *Manager) GenerateCode(ctx context.Context, email string) (string, error) {
	return m.issue(ctx, "resetcode.GenerateCode", key(email))
}

// GenerateDecoy does the same generate and store work as GenerateCode but
// binds the code to no email. Requests for unknown accounts use it so they
// cost the same as real ones.
func (m *Manager) GenerateDecoy(ctx context.Context) (string, error) {
	return m.issue(ctx, "resetcode.GenerateDecoy", decoyKey)
}

func (m *Manager) issue(ctx context.Context, op, k string) (string, error) {
	code, err := m.generate()
	if err != nil {
		return "", fmt.Errorf("%s: generate: %w", op, err)
	}

	entry := Entry{Code: code, ExpiresAt: m.now().Add(m.ttl)}
	if err := m.store.Set(ctx, k, entry, m.ttl); err != nil {
		return "", apperrors.TransientStore(op, err)
	}
	return code, nil
}

// VerifyCode reports whether code is the live code for email. An expired
// entry is evicted. A matching entry is left in place; callers that consume
// the code must call ClearCode.
func (m *Manager) VerifyCode(ctx context.Context, email, code string) (bool, error) {
	const op = "resetcode.VerifyCode"

	k := key(email)
	entry, ok, err := m.store.Get(ctx, k)
	if err != nil {
		return false, apperrors.TransientStore(op, err)
	}
	if !ok {
		return false, nil
	}

	if !m.now().Before(entry.ExpiresAt) {
		if err := m.store.Delete(ctx, k); err != nil {
			return false, apperrors.TransientStore(op, err)
		}
		return false, nil
	}

	return subtle.ConstantTimeCompare([]byte(entry.Code), []byte(code)) == 1, nil
}

// ClearCode removes any code for email. Safe to call when none exists.
func (m *Manager) ClearCode(ctx context.Context, email string) error {
	const op = "resetcode.ClearCode"

	if err := m.store.Delete(ctx, key(email)); err != nil {
		return apperrors.TransientStore(op, err)
	}
	return nil
}
