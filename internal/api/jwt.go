package api

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserInfo is the authenticated identity extracted from a JWT.
type UserInfo struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
}

// validateJWT parses and verifies a token string and returns the user it
// identifies.
func (s *APIServer) validateJWT(tokenString string) (*UserInfo, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	if exp, ok := claims["expiresAt"].(float64); ok {
		if time.Now().After(time.Unix(int64(exp), 0)) {
			return nil, fmt.Errorf("token expired")
		}
	}

	userID, ok := claims["userID"].(float64)
	if !ok {
		return nil, fmt.Errorf("token missing user id")
	}
	username, _ := claims["username"].(string)

	return &UserInfo{UserID: int(userID), Username: username}, nil
}
