package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// IssueToken exchanges the operator password for a short-lived session
// token. The config holds only the bcrypt hash, never the plaintext.
func (svc *Service) IssueToken(ctx context.Context, password string) (string, int64, error) {
	if svc.operatorBcrypt == "" {
		return "", 0, fmt.Errorf("operator password is not configured")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(svc.operatorBcrypt), []byte(password)); err != nil {
		return "", 0, fmt.Errorf("invalid password")
	}

	expiresAt := time.Now().Add(svc.tokenTTL)
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Issuer:    "portwarden",
		Subject:   "operator",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(svc.jwtSecret)
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt.Unix(), nil
}

// VerifyToken validates a session token's signature and expiry.
func (svc *Service) VerifyToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return svc.jwtSecret, nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("invalid token")
	}
	return nil
}
