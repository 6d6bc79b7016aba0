package settings

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger receives leveled messages at the store's decision points: format
// resolution, first-run seeding, sanitization outcome, load and save
// failures. Logging is purely observational and never changes control flow.
//
// logrus.FieldLogger satisfies this interface, so a logrus logger or entry
// can be passed to [WithLogger] directly.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// newDefaultLogger is the fallback used when no logger is configured: a
// logrus logger writing warning-or-worse messages to standard error.
func newDefaultLogger() Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)

	return logger
}
