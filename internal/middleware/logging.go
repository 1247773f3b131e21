package middleware

import (
	"net/http"
	"time"

	"giftlist-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request, leveled by status.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"client_ip":     c.ClientIP(),
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"status":        status,
			"latency_ms":    time.Since(start).Milliseconds(),
			"response_size": c.Writer.Size(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields["query"] = q
		}
		if ua := c.GetHeader("User-Agent"); ua != "" {
			fields["user_agent"] = ua
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry := logging.Logger.WithFields(fields)
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("Server error")
		case status == http.StatusTooManyRequests:
			entry.Warn("Rate limited")
		case status >= http.StatusBadRequest:
			entry.Warn("Client error")
		default:
			entry.Info("Request completed")
		}
	}
}
