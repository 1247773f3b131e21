package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"giftlist-api/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CORSConfig controls cross-origin access for the browser clients that
// drive this API.
type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string // exact origins, *.wildcards, or ["*"]
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposeHeaders    []string
	AllowCredentials bool
	MaxAge           int // preflight cache, seconds
}

// NewCORSConfigFromEnv reads CORS_* environment variables. The default header
// allowlist includes the admin session token header.
func NewCORSConfigFromEnv() *CORSConfig {
	origins := []string{"*"}
	if raw := getEnv("CORS_ALLOWED_ORIGINS", "*"); raw != "*" {
		origins = parseCommaSeparated(raw)
	}

	return &CORSConfig{
		Enabled:          getEnvBool("CORS_ENABLED", true),
		AllowedOrigins:   origins,
		AllowedMethods:   parseCommaSeparated(getEnv("CORS_ALLOWED_METHODS", "GET,POST,PUT,DELETE,OPTIONS")),
		AllowedHeaders:   parseCommaSeparated(getEnv("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,"+SessionTokenHeader)),
		ExposeHeaders:    parseCommaSeparated(getEnv("CORS_EXPOSE_HEADERS", "Content-Length,Content-Type")),
		AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		MaxAge:           getEnvInt("CORS_MAX_AGE", 3600),
	}
}

// CORS answers preflights and stamps allow headers for permitted origins.
// Disallowed origins get no CORS headers at all; the browser enforces the rest.
func CORS(config *CORSConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !config.Enabled || origin == "" {
			c.Next()
			return
		}

		if !config.originAllowed(origin) {
			logging.Logger.WithFields(logrus.Fields{
				"client_ip": c.ClientIP(),
				"origin":    origin,
				"path":      c.Request.URL.Path,
			}).Warn("CORS request from disallowed origin")
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		if config.AllowCredentials {
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		if len(config.ExposeHeaders) > 0 {
			c.Header("Access-Control-Expose-Headers", strings.Join(config.ExposeHeaders, ", "))
		}

		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
			c.Header("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
			c.Header("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (cfg *CORSConfig) originAllowed(origin string) bool {
	for _, allowed := range cfg.AllowedOrigins {
		switch {
		case allowed == "*", allowed == origin:
			return true
		case strings.HasPrefix(allowed, "*."):
			if strings.HasSuffix(origin, allowed[1:]) {
				return true
			}
		}
	}
	return false
}
