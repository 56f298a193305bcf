package utils

import (
	"errors"
	"time"

	"clubsync/config"

	"github.com/golang-jwt/jwt"
)

func secretKey() []byte {
	secret := config.AppConfig.JWTSecret
	if secret == "" {
		secret = "dev-secret-change-in-production"
	}
	return []byte(secret)
}

// GenerateToken creates a signed JWT with the given subject (user ID).
// The token carries an is_mentor claim so handlers can gate pattern access
// to the user themselves or a mentor. It expires after the given duration.
func GenerateToken(subject, email string, isMentor bool, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":       subject,
		"email":     email,
		"is_mentor": isMentor,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
}

// ExtractClaims validates the token and returns the subject ID and mentor flag.
func ExtractClaims(tokenString string) (string, bool, error) {
	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		return "", false, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", false, errors.New("token missing subject")
	}
	isMentor, _ := claims["is_mentor"].(bool)
	return sub, isMentor, nil
}
