package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the session token payload.
type Claims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// MintToken signs a session token for the user id and roles.
func MintToken(secret []byte, userID string, roles []string, ttl time.Duration) (string, error) {
	claims := Claims{
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies a session token and returns the actor it names.
func ParseToken(secret []byte, token string) (Actor, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return Actor{}, ErrForbidden
	}
	return Actor{UserID: claims.Subject, Roles: claims.Roles}, nil
}
