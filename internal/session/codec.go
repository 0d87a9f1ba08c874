// Package session carries the authenticated user identity in a signed
// cookie. There is no server-side session record: the cookie value is the
// whole session, an HS256-signed payload with a fixed 30 day lifetime.
package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jokehub/jokehub/internal/common/clock"
)

// Payload is everything a session asserts: the user it was issued to.
type Payload struct {
	UserID string
}

type Codec struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewCodec(secret string, ttl time.Duration, clk clock.Clock) *Codec {
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode signs the payload into an opaque cookie value. Expiry is fixed at
// issuance; there is no renewal.
func (c *Codec) Encode(p Payload) (string, error) {
	if p.UserID == "" {
		return "", errors.New("session payload has no user id")
	}

	now := c.clock.Now()
	claims := jwt.MapClaims{
		"sub": p.UserID,
		"iat": now.Unix(),
		"exp": now.Add(c.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry. Every failure mode, a forged or
// garbage value, a foreign secret, an expired session, a missing subject,
// yields (Payload{}, false); callers must treat every session read as
// optional.
func (c *Codec) Decode(value string) (Payload, bool) {
	if value == "" {
		return Payload{}, false
	}

	parsed, err := jwt.Parse(
		value,
		func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, errors.New("unexpected signing method")
			}
			return c.secret, nil
		},
		jwt.WithTimeFunc(c.clock.Now),
	)
	if err != nil || !parsed.Valid {
		return Payload{}, false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Payload{}, false
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Payload{}, false
	}

	return Payload{UserID: sub}, true
}
