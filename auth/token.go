// Package auth implements the session token codec. A session is fully
// stateless: the signed token is the only session state, so revocation
// before expiry is not possible.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-app/inkwell-backend/errs"
)

// TokenTTL is how long a minted session token stays valid. It matches the
// max age of the cookie that carries it.
const TokenTTL = time.Hour

// Identity is the verified user identity embedded in every session token.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
}

type sessionClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Codec mints and verifies HS256-signed session tokens. The signing secret
// is injected at construction; it is never hardcoded and the process refuses
// to start without one.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    time.Now,
	}, nil
}

// Encode produces a signed token embedding the identity, expiring TokenTTL
// from issuance.
func (c *Codec) Encode(identity Identity) (string, error) {
	now := c.now()
	claims := sessionClaims{
		UID:   identity.UID,
		Email: identity.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Decode verifies the signature and expiry and returns the embedded
// identity. Any failure maps to a single unauthorized error; the underlying
// cause stays server-side.
func (c *Codec) Decode(token string) (Identity, error) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Identity{}, errs.NewInvalidTokenError(err)
	}
	return Identity{UID: claims.UID, Email: claims.Email}, nil
}
