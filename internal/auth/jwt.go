package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
)

// Claims carried by every TianguiStore token. The browser auth guard and
// the policy engine both read the role.
type Claims struct {
	UserID int64  `json:"usuario_id"`
	Email  string `json:"correo_electronico"`
	Role   string `json:"rol"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the user.
func GenerateToken(cfg *config.JWTConfig, userID int64, email, role string) (string, error) {
	ttl := time.Duration(cfg.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(cfg *config.JWTConfig, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
