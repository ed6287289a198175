package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func InitLogger() {
	Logger = NewLogger(os.Getenv("LOG_LEVEL"))
}

// NewLogger builds a JSON logger writing to stdout. Unknown levels fall back
// to info.
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil || level == "" {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	logger.SetOutput(os.Stdout)

	return logger
}

func GetLogger() *logrus.Logger {
	if Logger == nil {
		InitLogger()
	}
	return Logger
}
