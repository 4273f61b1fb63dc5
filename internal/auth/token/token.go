// Package token implements the signed-token codec: HS256 JWTs carrying the
// account email as subject and its role as a claim. Verification is a pure
// function of (token, secret, now); there is no server-side token state and
// no revocation before natural expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// Identity is the request-scoped result of a successful verification.
type Identity struct {
	Subject string
	Role    string
}

// Claims is the canonical token payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a process-wide secret. Rotating the
// secret invalidates every previously issued token.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue signs a token for subject with the given role and validity window.
func (c *Codec) Issue(subject, role string, issuedAt, expiresAt time.Time) (string, error) {
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// ParseAndVerify validates structure, then signature, then expiry against
// now, and classifies any failure as ErrMalformed, ErrBadSignature or
// ErrExpired. The HMAC comparison inside the jwt library is constant-time.
func (c *Codec) ParseAndVerify(tokenString string, now time.Time) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	)

	claims := &Claims{}
	parsed, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrExpired
		default:
			return Identity{}, ErrMalformed
		}
	}
	if !parsed.Valid {
		return Identity{}, ErrBadSignature
	}

	return Identity{Subject: claims.Subject, Role: claims.Role}, nil
}
