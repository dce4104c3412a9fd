package helpers

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is carried by the launch token handed to the front-end.
type SessionClaims struct {
	Provider string `json:"provider"`
	PlayID   string `json:"play_id"`
	SID      string `json:"sid"`
	jwt.RegisteredClaims
}

// MintSessionToken signs a launch-session token. Vendors that echo our token
// back on callbacks are verified against the same secret.
func MintSessionToken(secret, provider, playID, sid string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Provider: provider,
		PlayID:   playID,
		SID:      sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSessionToken verifies a launch-session token and returns its claims.
func ParseSessionToken(secret, token string) (*SessionClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &SessionClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*SessionClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	return claims, nil
}
