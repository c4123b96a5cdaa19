package config

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a text logger writing to out at the configured level.
// An unknown level falls back to info. Debug forces the debug level.
func (c Config) NewLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if c.Debug {
		level = logrus.DebugLevel
	}
	l.SetLevel(level)
	return l
}
