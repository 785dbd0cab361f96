package telemetry

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"skytrip/pkg/logger"
)

// TraceLoggerMiddleware attaches trace_id and span_id from the active span to
// the request log lines.
func TraceLoggerMiddleware(log logger.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		span := trace.SpanFromContext(c.Request.Context())
		if span.SpanContext().IsValid() {
			traceID := span.SpanContext().TraceID().String()
			spanID := span.SpanContext().SpanID().String()

			c.Set("trace_id", traceID)
			c.Set("span_id", spanID)

			log.Info("incoming request",
				logger.Field{Key: "trace_id", Value: traceID},
				logger.Field{Key: "span_id", Value: spanID},
				logger.Field{Key: "method", Value: c.Request.Method},
				logger.Field{Key: "path", Value: c.Request.URL.Path},
			)
		}

		c.Next()

		if span.SpanContext().IsValid() {
			log.Info("request completed",
				logger.Field{Key: "trace_id", Value: span.SpanContext().TraceID().String()},
				logger.Field{Key: "status", Value: c.Writer.Status()},
				logger.Field{Key: "method", Value: c.Request.Method},
				logger.Field{Key: "path", Value: c.Request.URL.Path},
			)
		}
	}
}
