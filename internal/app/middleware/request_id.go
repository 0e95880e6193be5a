package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	keyLogger       = "logger"
)

// RequestID stamps every request with an id, reusing the caller's when present, and logs
// the request once it completes.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		entry := logrus.WithField("request_id", requestID)
		c.Set(keyLogger, entry)

		start := time.Now()
		c.Next()

		entry.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
			"size":     c.Writer.Size(),
		}).Info("request completed")
	}
}

// Logger returns the request-scoped entry, or the standard logger outside RequestID.
func Logger(c *gin.Context) logrus.FieldLogger {
	if v, ok := c.Get(keyLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.StandardLogger()
}
