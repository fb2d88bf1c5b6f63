// Package jwt codifica y valida los tokens de sesión HS256 de la aplicación.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/jmaldonado/hub-admin-api/internal/domain/entity"
)

// Claims incluye los claims estándar JWT más los campos propios del principal.
// Se incluyen hub y roles para que el middleware pueda tomar decisiones sin
// una segunda consulta, aunque la resolución de identidad siempre reconfirma
// contra la base de datos.
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	HubID int32    `json:"hub_id"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
}

// Generate firma un token de sesión para el principal con la vigencia indicada
// en días. El claim jti lleva un UUID para que cada token emitido sea único.
func Generate(secret string, p *entity.Principal, issuer string, days int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.Sub,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(days) * 24 * time.Hour)),
		},
		Email: p.Email,
		HubID: p.HubID,
		Name:  p.Name,
		Roles: p.Roles,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida firma y expiración y reconstruye el principal declarado en el
// token. Retorna error si el token es inválido, expirado o de otro algoritmo.
func Parse(secret, tokenString string) (*entity.Principal, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &entity.Principal{
		Sub:   claims.Subject,
		Email: claims.Email,
		HubID: claims.HubID,
		Name:  claims.Name,
		Roles: claims.Roles,
	}, nil
}
