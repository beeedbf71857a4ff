package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminAuth issues and verifies the signed token that marks a session as privileged
type AdminAuth struct {
	secretKey    []byte
	tokenExpiry  time.Duration
	username     string
	passwordHash string
}

// NewAdminAuth creates an admin auth instance. The configured admin password is
// hashed immediately so the plaintext is not kept in memory.
func NewAdminAuth(secretKey, username, password string, tokenExpiry time.Duration) (*AdminAuth, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if username == "" || password == "" {
		return nil, errors.New("admin credentials cannot be empty")
	}

	if tokenExpiry == 0 {
		tokenExpiry = 12 * time.Hour
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}

	return &AdminAuth{
		secretKey:    []byte(secretKey),
		tokenExpiry:  tokenExpiry,
		username:     username,
		passwordHash: hash,
	}, nil
}

// Authenticate checks login form credentials against the configured admin account.
func (a *AdminAuth) Authenticate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	passOK, err := VerifyPassword(a.passwordHash, password)
	if err != nil {
		return false
	}

	return userOK && passOK
}

// GenerateToken generates a signed admin session token
func (a *AdminAuth) GenerateToken() (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		Issuer:    "zezim",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(a.tokenExpiry)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign admin token: %w", err)
	}

	return signed, nil
}

// VerifyToken verifies an admin session token
func (a *AdminAuth) VerifyToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secretKey, nil
	})
	if err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject != "admin" {
		return errors.New("invalid token")
	}

	return nil
}
