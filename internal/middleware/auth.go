package middleware

import (
	"strings"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/auth"
	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/config"
)

// Context value keys set by RequireAuth.
const (
	CtxUserID = "usuario_id"
	CtxEmail  = "correo_electronico"
	CtxRole   = "rol"
)

// RequireAuth verifies the bearer token (cache first, then full parse) and
// stores the claims in the request values.
func RequireAuth(cfg *config.JWTConfig, cache *auth.TokenCache) iris.Handler {
	return func(ctx iris.Context) {
		token := ctx.GetHeader("Authorization")
		token = strings.TrimPrefix(token, "Bearer ")
		if token == "" {
			ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "falta el token"})
			return
		}

		var claims *auth.Claims
		if cache != nil {
			if cached, hit, err := cache.Get(ctx.Request().Context(), token); err == nil && hit {
				// The cache TTL never exceeds the token TTL, but the
				// expiry still has to hold.
				if cached.ExpiresAt != nil && cached.ExpiresAt.After(time.Now()) {
					claims = cached
				}
			} else if err != nil {
				zap.L().Warn("token cache lookup failed", zap.Error(err))
			}
		}

		if claims == nil {
			parsed, err := auth.ParseToken(cfg, token)
			if err != nil {
				ctx.StopWithJSON(401, iris.Map{"code": 401, "msg": "token inválido"})
				return
			}
			claims = parsed
			if cache != nil {
				if err := cache.Set(ctx.Request().Context(), token, claims); err != nil {
					zap.L().Warn("token cache store failed", zap.Error(err))
				}
			}
		}

		ctx.Values().Set(CtxUserID, claims.UserID)
		ctx.Values().Set(CtxEmail, claims.Email)
		ctx.Values().Set(CtxRole, claims.Role)
		ctx.Next()
	}
}
