package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process logger. LOG_LEVEL selects the level and
// ENVIRONMENT=production switches to JSON output.
func New(service string) *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(parseLevel(os.Getenv("LOG_LEVEL")))

	if os.Getenv("ENVIRONMENT") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger.WithField("service", service)
}

func parseLevel(level string) logrus.Level {
	switch level {
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
