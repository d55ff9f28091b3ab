// Package jwtx issues and verifies HMAC-signed access tokens for the HTTP
// layer. The services never see tokens; they receive the resolved caller.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultAccessTokenTTL is used when no TTL is configured.
const DefaultAccessTokenTTL = 15 * time.Minute

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Claims carried by an access token. Subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// Signer mints and verifies HS256 access tokens with a shared secret.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	if ttl == 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &Signer{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// Sign issues a token for the given user ID.
func (s *Signer) Sign(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify parses and validates a raw token, returning its claims.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid || claims.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
