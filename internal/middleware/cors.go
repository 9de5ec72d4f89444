package middleware

import "github.com/kataras/iris/v12"

// CORS allows the configured origin, defaulting to permissive for local
// development.
func CORS(origin string) iris.Handler {
	if origin == "" {
		origin = "*"
	}
	return func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
		if ctx.Method() == "OPTIONS" {
			ctx.StatusCode(204)
			return
		}
		ctx.Next()
	}
}
