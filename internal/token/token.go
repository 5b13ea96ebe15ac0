// Package token issues and verifies the signed, stateless access tokens
// handed out at login.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Nahuel-a/Equipo-17-Pymes/internal/apperrors"
)

var (
	// ErrInvalidToken means the client must authenticate again: bad signature,
	// expired, malformed or missing the identity claim.
	ErrInvalidToken = errors.New("token: invalid or expired")
	// ErrVerification is an unexpected failure while decoding a token.
	ErrVerification = errors.New("token: verification failed")
	// ErrSigning is returned when a token could not be encoded.
	ErrSigning = errors.New("token: signing failed")
)

// Claims is the token payload: the user's email plus the registered claims,
// of which exp is always set.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret     []byte
	algorithm  string
	defaultTTL time.Duration
	now        func() time.Time
}

func NewIssuer(secret, algorithm string, defaultTTL time.Duration) *Issuer {
	return &Issuer{
		secret:     []byte(secret),
		algorithm:  algorithm,
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

func (i *Issuer) method() (jwt.SigningMethod, error) {
	if len(i.secret) == 0 {
		return nil, apperrors.Configuration("SECRET_KEY is not set")
	}
	if i.algorithm == "" {
		return nil, apperrors.Configuration("ALGORITHM is not set")
	}
	m, ok := jwt.GetSigningMethod(i.algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, apperrors.Configuration(fmt.Sprintf("unsupported signing algorithm %q", i.algorithm))
	}
	return m, nil
}

// Issue signs claims with an expiry of now+ttl. A non-positive ttl falls back
// to the configured default.
func (i *Issuer) Issue(claims Claims, ttl time.Duration) (string, error) {
	method, err := i.method()
	if err != nil {
		return "", err
	}
	if ttl <= 0 {
		ttl = i.defaultTTL
	}

	now := i.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))

	signed, err := jwt.NewWithClaims(method, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}
	return signed, nil
}

// Verify checks signature and expiry in one step and returns the email claim.
func (i *Issuer) Verify(raw string) (string, error) {
	method, err := i.method()
	if err != nil {
		return "", err
	}

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if isClientError(err) {
			return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return "", fmt.Errorf("%w: %v", ErrVerification, err)
	}

	if claims.Email == "" {
		return "", fmt.Errorf("%w: missing email claim", ErrInvalidToken)
	}
	return claims.Email, nil
}

func isClientError(err error) bool {
	for _, target := range []error{
		jwt.ErrTokenMalformed,
		jwt.ErrTokenSignatureInvalid,
		jwt.ErrSignatureInvalid,
		jwt.ErrTokenExpired,
		jwt.ErrTokenNotValidYet,
		jwt.ErrTokenUsedBeforeIssued,
		jwt.ErrTokenRequiredClaimMissing,
		jwt.ErrTokenInvalidClaims,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
