// Package logging sets up the file logger. The terminal belongs to the
// UI, so logs never go to stdout or stderr while it runs.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/sirupsen/logrus"
)

const (
	appName     = "glimpse"
	logFileName = "glimpse.log"
)

// Path returns the log file location in the XDG state directory,
// creating its directory.
func Path() (string, error) {
	return xdg.StateFile(filepath.Join(appName, logFileName))
}

// Open returns a logger appending to the default log file.
func Open(level logrus.Level) (*logrus.Logger, io.Closer, error) {
	path, err := Path()
	if err != nil {
		return nil, nil, err
	}
	return OpenFile(path, level)
}

// OpenFile returns a logger appending to path.
func OpenFile(path string, level logrus.Level) (*logrus.Logger, io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log %s: %w", path, err)
	}
	return New(f, level), f, nil
}

// New returns a text logger writing to w.
func New(w io.Writer, level logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return log
}

// Discard returns a logger that drops everything.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
