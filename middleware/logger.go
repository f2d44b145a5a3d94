package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"resort-backend/logger"
)

// RequestLogger writes one line per request through the application logger.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.Log.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"ip":      c.ClientIP(),
			"latency": time.Since(start).String(),
		})
		if c.Writer.Status() >= 500 {
			entry.Error("request")
		} else {
			entry.Info("request")
		}
	}
}
