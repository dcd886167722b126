package util

import (
	"io"
	"os"

	"github.com/gruntwork-io/graphrunner/errors"
	"github.com/sirupsen/logrus"
)

// PrefixKeyName is the logrus field name under which the prefix passed to CreateLogEntry is stored
const PrefixKeyName = "prefix"

// CreateLogEntry creates a logger entry at the given level that writes to stderr. If prefix is
// non-empty, every log line is tagged with it.
func CreateLogEntry(prefix string, level logrus.Level) *logrus.Entry {
	return CreateLogEntryWithWriter(os.Stderr, prefix, level)
}

// CreateLogEntryWithWriter creates a logger entry at the given level that writes to the given
// writer. If prefix is non-empty, every log line is tagged with it.
func CreateLogEntryWithWriter(writer io.Writer, prefix string, level logrus.Level) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(writer)
	logger.SetLevel(level)

	if prefix != "" {
		return logger.WithField(PrefixKeyName, prefix)
	}

	return logrus.NewEntry(logger)
}

// ParseLogLevel converts the given log level name into a logrus level
func ParseLogLevel(levelName string) (logrus.Level, error) {
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return level, errors.WithStackTraceAndPrefix(err, "Could not parse log level %s", levelName)
	}

	return level, nil
}
