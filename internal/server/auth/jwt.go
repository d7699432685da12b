// Package auth issues and verifies the signed bearer tokens shared by the
// gateway and the account and catalog handlers. Every component holding the
// same secret accepts the others' tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultValidity is the lifetime of an issued token.
const DefaultValidity = 24 * time.Hour

// Claims is the token payload: {email, role, exp}.
type Claims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// TokenService signs and verifies HS256 tokens with a single secret.
type TokenService struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

// Option customises a TokenService.
type Option func(*TokenService)

// WithClock replaces time.Now, both for the exp claim and for verification.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService returns a service signing with secret. A non-positive
// validity means DefaultValidity.
func NewTokenService(secret []byte, validity time.Duration, opts ...Option) *TokenService {
	if validity <= 0 {
		validity = DefaultValidity
	}
	s := &TokenService{secret: secret, validity: validity, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Issue returns a signed token for email and role expiring after the
// configured validity.
func (s *TokenService) Issue(email string, role models.Role) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.validity)),
		},
		Email: email,
		Role:  role,
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify parses tokenString and checks its signature and expiry. Failures
// are reported as common.ErrTokenExpired, common.ErrInvalidSignature or
// common.ErrMalformedToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidSignature
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return common.ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return common.ErrMalformedToken
	default:
		return common.ErrInvalidSignature
	}
}
