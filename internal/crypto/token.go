package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers malformed, tampered and expired tokens alike.
// Callers must not distinguish between those cases.
var ErrInvalidToken = errors.New("invalid or expired token")

type subjectClaim struct {
	ID int `json:"id"`
}

// Claims is the JWT payload: {"user":{"id":N}} plus registered claims.
// The nested shape is a wire contract with existing API consumers.
type Claims struct {
	User subjectClaim `json:"user"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256-signed token asserting the given user id,
// expiring ttl from now.
func GenerateToken(userID int, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		User: subjectClaim{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies signature and expiry and returns the asserted user id.
func ParseToken(tokenStr string, secret []byte) (int, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return 0, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.User.ID, nil
}
