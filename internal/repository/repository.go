package repository

import (
	"errors"

	"shift-roster/internal/apperr"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// newLogger builds the logger every repository uses.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return logger
}

// translateError maps store-level failures onto the shared error kinds.
// Duplicate-key violations become Conflict so concurrent duplicate
// creation surfaces as a 409-equivalent. Requires gorm's TranslateError
// to be enabled on the session.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflictf("duplicate row")
	}
	return err
}
