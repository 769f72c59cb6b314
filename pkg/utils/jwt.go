package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the token payload. Subject carries the user ID.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(cfg JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		secret: []byte(cfg.Secret),
		ttl:    time.Duration(cfg.ExpiryHours) * time.Hour,
		now:    time.Now,
	}
}

// Generate signs an HS256 token for the user and returns it with its expiry.
func (ti *TokenIssuer) Generate(userID uuid.UUID, email string) (string, time.Time, error) {
	issuedAt := ti.now()
	expiresAt := issuedAt.Add(ti.ttl)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Parse verifies signature, algorithm and expiry, and returns the user ID and email.
func (ti *TokenIssuer) Parse(tokenString string) (uuid.UUID, string, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ti.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(ti.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("parse token: %w", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, "", errors.New("parse token: invalid subject")
	}

	return userID, claims.Email, nil
}
