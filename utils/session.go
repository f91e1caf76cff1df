package utils

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "session"

type SessionClaims struct {
	jwt.RegisteredClaims
}

// NewSessionToken signs an HS256 token for the given user. The subject is the
// user id; jti makes every login distinguishable in logs.
func NewSessionToken(secret []byte, userID uint, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("session secret is not set")
	}

	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifySessionToken validates the token signature and expiry and returns the
// user id from the subject claim.
func VerifySessionToken(secret []byte, tokenStr string) (uint, error) {
	if len(secret) == 0 {
		return 0, errors.New("session secret is not set")
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid session token")
	}

	uid, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, errors.New("invalid subject")
	}
	return uint(uid), nil
}
