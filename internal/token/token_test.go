package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
)

func fixedIssuer(secret, alg string, now time.Time) *Issuer {
	i := NewIssuer(secret, alg, 30*time.Minute)
	i.now = func() time.Time { return now }
	return i
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	i := fixedIssuer("secret", "HS256", now)

	raw, err := i.Issue(Claims{Email: "a@x.com"}, 0)
	require.NoError(t, err)

	email, err := i.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)
}

func TestPayloadCarriesEmailAndExp(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	i := fixedIssuer("secret", "HS256", now)

	raw, err := i.Issue(Claims{Email: "a@x.com"}, 10*time.Minute)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(raw, claims)
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", claims["email"])
	assert.EqualValues(t, now.Add(10*time.Minute).Unix(), claims["exp"])
}

func TestVerifyFailsAfterExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	i := fixedIssuer("secret", "HS256", now)

	raw, err := i.Issue(Claims{Email: "a@x.com"}, time.Minute)
	require.NoError(t, err)

	i.now = func() time.Time { return now.Add(2 * time.Minute) }
	_, err = i.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	t.Parallel()

	now := time.Now()
	other := fixedIssuer("other-secret", "HS256", now)
	raw, err := other.Issue(Claims{Email: "a@x.com"}, 0)
	require.NoError(t, err)

	_, err = fixedIssuer("secret", "HS256", now).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	t.Parallel()

	now := time.Now()
	raw, err := fixedIssuer("secret", "HS512", now).Issue(Claims{Email: "a@x.com"}, 0)
	require.NoError(t, err)

	_, err = fixedIssuer("secret", "HS256", now).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMalformedAndMissingClaims(t *testing.T) {
	t.Parallel()

	now := time.Now()
	i := fixedIssuer("secret", "HS256", now)

	_, err := i.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	raw, err := i.Issue(Claims{}, 0)
	require.NoError(t, err)
	_, err = i.Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "a@x.com"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = i.Verify(noExp)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueRequiresConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		secret string
		alg    string
	}{
		{"missing secret", "", "HS256"},
		{"missing algorithm", "secret", ""},
		{"asymmetric algorithm", "secret", "RS256"},
		{"unknown algorithm", "secret", "XX999"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := NewIssuer(tt.secret, tt.alg, time.Minute)

			_, err := i.Issue(Claims{Email: "a@x.com"}, 0)
			assert.True(t, errors.Is(err, apperrors.ErrConfiguration), "got %v", err)

			_, err = i.Verify("whatever")
			assert.True(t, errors.Is(err, apperrors.ErrConfiguration), "got %v", err)
		})
	}
}
