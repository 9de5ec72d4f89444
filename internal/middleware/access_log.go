package middleware

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/CrisBM7/TianguiStore-Tienda-en--Linea/internal/metrics"
)

// AccessLog tags every request with an id, logs it on completion and feeds
// the request counter.
func AccessLog() iris.Handler {
	return func(ctx iris.Context) {
		start := time.Now()

		requestID := ctx.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.Header("X-Request-ID", requestID)

		ctx.Next()

		status := ctx.GetStatusCode()
		metrics.HTTPRequests.WithLabelValues(ctx.Method(), strconv.Itoa(status)).Inc()
		zap.L().Info("http request",
			zap.String("request_id", requestID),
			zap.String("method", ctx.Method()),
			zap.String("path", ctx.Path()),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)))
	}
}
