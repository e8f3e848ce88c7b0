// Package jwt issues and checks the dashboard session token.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	Subject    = "dashboard"
	DefaultTTL = 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

func NewToken(duration time.Duration, secret string) (string, error) {
	if duration <= 0 {
		duration = DefaultTTL
	}
	now := time.Now()

	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["sub"] = Subject
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify accepts only unexpired HS256 tokens signed with secret for the dashboard subject.
func Verify(tokenString, secret string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(Subject),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
