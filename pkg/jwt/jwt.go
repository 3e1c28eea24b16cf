package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles reconocidos por el middleware RBAC.
const (
	RoleAdmin     = "admin"
	RoleBodeguero = "bodeguero"
	RoleConsultor = "consultor"
)

// Claims incluye los claims estándar JWT más el usuario y su rol.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

var errEmptySecret = errors.New("jwt: secret vacío")

// Generate firma un token HS256 para userID con el rol dado.
// La emisión de tokens la hace el servicio de identidad; aquí se usa en tests y herramientas.
func Generate(secret, userID, role, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma, expiración y emisor (si issuer no está vacío) y devuelve los claims.
func Parse(secret, issuer, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, errEmptySecret
	}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.UserID == "" {
		return nil, fmt.Errorf("jwt: claims inválidos")
	}
	return claims, nil
}
