package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds the application logger. Production and staging log JSON,
// everything else logs human readable text.
func New(level, environment string) *logrus.Logger {
	return newWithOutput(level, environment, os.Stdout)
}

func newWithOutput(level, environment string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", level, err)
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)

	switch strings.ToLower(environment) {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	log.Debugf("Logger initialized with level %s for environment %s", log.GetLevel(), environment)
	return log
}

// Discard returns a logger that drops everything, for tests
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
