package logger

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const LOG_LEVEL_ENV = "CONTACTBOOK_LOG_LEVEL"

// NewLogger builds a development style sugared logger. The level defaults to debug
// and can be raised with CONTACTBOOK_LOG_LEVEL (debug, info, warn, error).
func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.DisableStacktrace = true

	if level := strings.TrimSpace(os.Getenv(LOG_LEVEL_ENV)); level != "" {
		if err := config.Level.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			log.Printf("ignoring invalid %s=%q: %v", LOG_LEVEL_ENV, level, err)
		}
	}

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Sugar()
}
