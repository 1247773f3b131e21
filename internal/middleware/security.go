package middleware

import (
	"net/http"

	"giftlist-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// DefaultMaxBodySize caps request bodies at 1MB; a list document with a few
// dozen gifts is well under that.
const DefaultMaxBodySize int64 = 1 << 20

// MaxBodySizeFromEnv reads MAX_REQUEST_BODY_SIZE, in bytes.
func MaxBodySizeFromEnv() int64 {
	return int64(getEnvInt("MAX_REQUEST_BODY_SIZE", int(DefaultMaxBodySize)))
}

var securityHeaders = map[string]string{
	"X-Frame-Options":         "DENY",
	"X-Content-Type-Options":  "nosniff",
	"Content-Security-Policy": "default-src 'none'; frame-ancestors 'none'",
	"Referrer-Policy":         "no-referrer",
	"Cache-Control":           "no-store, no-cache, must-revalidate, private",
}

// SecurityHeaders sets the standard hardening headers on every response.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, value := range securityHeaders {
			c.Header(name, value)
		}
		c.Next()
	}
}

// RequestSizeLimit rejects oversized bodies up front and caps streamed reads.
func RequestSizeLimit(maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxSize {
			logging.Logger.WithFields(logrus.Fields{
				"client_ip":      c.ClientIP(),
				"content_length": c.Request.ContentLength,
				"max_size":       maxSize,
			}).Warn("Request body too large")

			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"code":    "REQUEST_TOO_LARGE",
				"message": "Request body too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize)
		c.Next()
	}
}

// ErrorSanitizer logs errors attached to the context and makes sure 5xx
// responses never leak internal details to the client.
func ErrorSanitizer() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		logging.Logger.WithFields(logrus.Fields{
			"client_ip": c.ClientIP(),
			"path":      c.Request.URL.Path,
			"method":    c.Request.Method,
			"error":     c.Errors.Last().Error(),
		}).Error("Request error")

		if c.Writer.Status() >= http.StatusInternalServerError && !c.Writer.Written() {
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "An internal error occurred. Please try again later.",
			})
		}
	}
}
