// Package token encodes and decodes the signed session tokens carried by
// clients. A token asserts a subject user id, an expiration instant and a
// type tag (access or refresh); access tokens additionally carry the
// display username.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username,omitempty"`
	Type     Type      `json:"type"`
	jwt.RegisteredClaims
}

// Codec signs and verifies tokens with a process-wide HMAC secret.
// The pair of methods is side-effect free.
type Codec struct {
	secret   []byte
	timeFunc func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), timeFunc: time.Now}
}

// NewCodecAt builds a codec whose notion of "now" comes from the given
// function. Used by tests to move past token expiry.
func NewCodecAt(secret string, timeFunc func() time.Time) *Codec {
	return &Codec{secret: []byte(secret), timeFunc: timeFunc}
}

// Encode signs a token for the subject. Username is only embedded in
// access tokens.
func (c *Codec) Encode(userID uuid.UUID, username string, typ Type, ttl time.Duration) (string, error) {
	now := c.timeFunc()
	claims := &Claims{
		UserID: userID,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	if typ == TypeAccess {
		claims.Username = username
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode verifies the signature and expiry, returning the claims.
// Expired tokens fail with ErrExpiredToken, everything else with
// ErrInvalidToken.
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.timeFunc))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// DecodeSubject extracts the subject user id from a token, accepting the
// legacy claim spellings still found in older clients.
func (c *Codec) DecodeSubject(tokenString string) (uuid.UUID, error) {
	raw := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.timeFunc))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, ErrExpiredToken
		}
		return uuid.Nil, ErrInvalidToken
	}
	if !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	for _, field := range []string{"user_id", "userId", "sub", "id"} {
		value, ok := raw[field].(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(value)
		if err != nil {
			return uuid.Nil, ErrInvalidToken
		}
		return id, nil
	}
	return uuid.Nil, ErrInvalidToken
}
