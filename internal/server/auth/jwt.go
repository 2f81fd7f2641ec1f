// Package auth issues and checks the HS256 tokens handed out by the dev
// server: login tokens and short-lived password reset tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. Login tokens carry no purpose claim.
const (
	PurposeLogin = ""
	PurposeReset = "reset"
)

// Claims extends the registered claims with the token's purpose. The user id
// travels in "sub".
type Claims struct {
	jwt.RegisteredClaims
	Purpose string `json:"purpose,omitempty"`
}

// GenerateToken signs a token for userID valid for validityDuration. Every
// token gets a random "jti".
func GenerateToken(userID, purpose string, secretKey []byte, validityDuration time.Duration) (string, error) {
	id, err := common.MakeRandHexString(16)
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Purpose: purpose,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
// Expired tokens yield common.ErrTokenExpired, anything else wrong
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ParseTokenFor is ParseToken that also requires the given purpose.
func ParseTokenFor(tokenString, purpose string, secretKey []byte) (*Claims, error) {
	claims, err := ParseToken(tokenString, secretKey)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, common.ErrInvalidToken
	}
	return claims, nil
}
