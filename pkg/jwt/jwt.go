// Package jwt firma y valida los tokens de sesión de comercial-api.
// Los emite `ncfctl token` y los consume AuthMiddleware en cada petición /api.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret la configuración no trae JWT_SECRET.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Claims sujeto del token y su rol.
// Role es uno de admin, vendedor o bodeguero; RequireRole lo compara tal cual.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Generate emite un token HS256 para el usuario con vigencia de expMinutes.
// El usuario va en user_id y en sub.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse devuelve usuario y rol de un token vigente firmado con secret.
// Solo acepta firmas HMAC.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, hmacKey(secret))
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("jwt: claims inválidos")
	}
	return claims.UserID, claims.Role, nil
}

func hmacKey(secret string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: método de firma inesperado %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}
}
