package security

import (
	"errors"
	"fmt"
	"time"

	"user_hub/internal/domain/model"
	"user_hub/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

var TokenAuth *jwtauth.JWTAuth

// Decode failure kinds. All of them collapse to 401 at the boundary but
// stay distinguishable for diagnostics.
var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenSignature = errors.New("token signature mismatch")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenClaims    = errors.New("token claims invalid")
)

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

func GenerateToken(userID string, role model.Role) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(config.AppConfig.JWTExp).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// DecodeToken verifies signature and expiry and returns the identity and
// role bound at issuance time.
func DecodeToken(tokenString string) (string, model.Role, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return config.AppConfig.JWTKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", "", ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", "", ErrTokenSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", "", ErrTokenExpired
		default:
			return "", "", fmt.Errorf("parse token: %w", err)
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", ErrTokenClaims
	}
	userID, err := GetUserIDFromClaims(claims)
	if err != nil {
		return "", "", ErrTokenClaims
	}
	roleStr, err := GetUserRoleFromClaims(claims)
	if err != nil {
		return "", "", ErrTokenClaims
	}
	role := model.Role(roleStr)
	if !role.Valid() {
		return "", "", ErrTokenClaims
	}
	return userID, role, nil
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUserRoleFromClaims(claims jwt.MapClaims) (string, error) {
	role, ok := claims["role"].(string)
	if !ok {
		return "", errors.New("role claim is missing or not a string")
	}
	return role, nil
}
