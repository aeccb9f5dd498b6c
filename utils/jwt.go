package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

// Load the secret from an environment variable. Fallback to a default (not recommended in production).
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "stayhub-dev"
	}
	return secret
}

// GenerateToken creates a signed JWT for the given user. The admin claim is
// carried in the token so role-gated endpoints do not need a user lookup.
func GenerateToken(userID, username string, isAdmin bool) (string, error) {
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"admin":    isAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// ExtractIdentity returns the user ID, username and admin flag carried by a
// bearer token, or an error when the token is invalid or expired.
func ExtractIdentity(tokenString string) (userID, username string, isAdmin bool, err error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return "", "", false, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", false, errors.New("invalid token claims")
	}
	userID, _ = claims["sub"].(string)
	username, _ = claims["username"].(string)
	isAdmin, _ = claims["admin"].(bool)
	if userID == "" {
		return "", "", false, errors.New("token missing subject")
	}
	return userID, username, isAdmin, nil
}
