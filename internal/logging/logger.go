package logging

import (
	"io"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. Init must run before anything logs.
var Logger = logrus.New()

// Options controls log level, format and optional rotating file output.
type Options struct {
	Level      string
	JSON       bool
	File       string // empty disables file output
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// OptionsFromEnv reads LOG_* environment variables, falling back to sane
// defaults (info level, text format, rotating file under ./logs).
func OptionsFromEnv() Options {
	opts := Options{
		Level:      envStr("LOG_LEVEL", "info"),
		JSON:       envBool("LOG_JSON_FORMAT", false),
		MaxSizeMB:  envInt("LOG_MAX_SIZE_MB", 100),
		MaxBackups: envInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: envInt("LOG_MAX_AGE_DAYS", 28),
		Compress:   envBool("LOG_COMPRESS", true),
	}
	if envBool("LOG_FILE_ENABLED", true) {
		opts.File = envStr("LOG_FILE_PATH", "./logs/giftlist-api.log")
	}
	return opts
}

// Init configures the global logger.
func Init(opts Options) {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	if opts.JSON {
		Logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if opts.File == "" {
		Logger.SetOutput(os.Stdout)
		return
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
	}
	Logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	Logger.WithFields(logrus.Fields{
		"file":        opts.File,
		"max_size_mb": opts.MaxSizeMB,
		"max_backups": opts.MaxBackups,
	}).Info("File logging enabled")
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
