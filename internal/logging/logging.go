package logging

import (
	"github.com/sirupsen/logrus"
)

// Setup builds the process logger from settings strings. Unknown levels fall
// back to info rather than failing startup.
func Setup(level, format string) *logrus.Logger {
	logger := logrus.New()
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

// EngineAdapter bridges a logrus logger to the calculation engine's minimal
// logging interface.
type EngineAdapter struct {
	L *logrus.Logger
}

func (a EngineAdapter) Debugf(format string, args ...any) { a.L.Debugf(format, args...) }
func (a EngineAdapter) Infof(format string, args ...any)  { a.L.Infof(format, args...) }
func (a EngineAdapter) Warnf(format string, args ...any)  { a.L.Warnf(format, args...) }
func (a EngineAdapter) Errorf(format string, args ...any) { a.L.Errorf(format, args...) }
