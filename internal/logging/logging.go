// Package logging opens the ag log file.
package logging

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// FileName is the log file created in the state directory.
const FileName = "agency.log"

// TimeFormat is the timestamp layout of log lines.
const TimeFormat = "2006-01-02_15:04:05"

// ParseLevel maps a level name to a zerolog level. Empty means info.
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// New returns a console-formatted logger writing to out.
func New(out io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: TimeFormat,
		NoColor:    true,
	}).Level(level).With().Timestamp().Caller().Logger()
}

// Open appends to agency.log in dir. The returned closer closes the file.
func Open(dir string, levelName string) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(levelName)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log dir: %w", err)
	}

	filePerms := 0o666
	logFile, err := os.OpenFile(filepath.Join(dir, FileName), os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	return New(logFile, level), logFile, nil
}
