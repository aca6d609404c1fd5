package service

import (
	"time"

	"github.com/sirupsen/logrus"
)

// newLogger builds the logger every service uses.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// ParseDateFilter parses an ISO-8601 date-range bound from a request.
// An unparsable value means "no filter", never an error.
func ParseDateFilter(value string) *time.Time {
	if value == "" {
		return nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}

	return nil
}
