// Package session issues and revokes login sessions. A session is an HS256
// token whose id must also be present in the backing store to be valid.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	DefaultTTL = 24 * 7 * time.Hour
	issuer     = "gymnotetaker"
)

var ErrInvalidSession = errors.New("session is invalid or expired")

// Store creates, checks and revokes sessions for accounts.
type Store interface {
	Create(ctx context.Context, accountID string) (token string, err error)
	Validate(ctx context.Context, token string) (accountID string, err error)
	Delete(ctx context.Context, token string) error
}

// claims defines the structure of the token payload. ID (jti) is the session id.
type claims struct {
	AccountID string `json:"uid"`
	jwt.RegisteredClaims
}

type signer struct {
	secret []byte
	ttl    time.Duration
}

func newSigner(secret string, ttl time.Duration) signer {
	if secret == "" {
		panic("JWT secret cannot be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return signer{secret: []byte(secret), ttl: ttl}
}

func (s signer) sign(accountID, sessionID string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   accountID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

func (s signer) parse(tokenString string) (*claims, error) {
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid || c.ID == "" || c.AccountID == "" {
		return nil, ErrInvalidSession
	}
	return c, nil
}

func newSessionID() string {
	return uuid.NewString()
}
