package commands

import (
	"io"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// setupLogging points logrus at --log-file, or at def when no file is set.
// The returned func closes the file.
func setupLogging(def io.Writer) (func(), error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", logLevel)
	}
	log.SetLevel(level)

	if logFile == "" {
		log.SetOutput(def)
		return func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open log file")
	}
	log.SetOutput(f)
	return func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("error while closing log file")
		}
	}, nil
}
