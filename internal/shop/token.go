package shop

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenMaker mints session tokens on login. The token identifies a profile,
// nothing more; there are no credentials behind it.
type TokenMaker struct {
	secret []byte
	issuer string
}

func NewTokenMaker(secret string) *TokenMaker {
	return &TokenMaker{
		secret: []byte(secret),
		issuer: "navya-storefront",
	}
}

type Claims struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
	jwt.RegisteredClaims
}

func (t *TokenMaker) New(sess Session, ttl time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		Name:   sess.Name,
		Email:  sess.Email,
		Avatar: sess.Avatar,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.Email,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenMaker) Parse(tokenStr string) (Claims, error) {
	var c Claims

	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return Claims{}, errors.New("invalid token")
	}

	if c.Issuer != "" && c.Issuer != t.issuer {
		return Claims{}, errors.New("invalid issuer")
	}

	return c, nil
}
