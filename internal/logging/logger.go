// Package logging provides a small leveled logger over the standard log package.
package logging

import (
	"io"
	"log"
	"strings"
)

// Level represents logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// ParseLevel maps ERROR, WARN, INFO or DEBUG (any case) to a Level.
// ok is false for any other value.
func ParseLevel(s string) (level Level, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return LevelError, true
	case "WARN", "WARNING":
		return LevelWarn, true
	case "INFO", "":
		return LevelInfo, true
	case "DEBUG":
		return LevelDebug, true
	}
	return LevelInfo, false
}

// Logger provides leveled logging with a component tag.
type Logger struct {
	level  Level
	prefix string
	out    *log.Logger
}

// New creates a logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{level: level, out: log.New(w, "", log.LstdFlags)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

// With returns a logger that tags every line with [component].
func (l *Logger) With(component string) *Logger {
	c := *l
	c.prefix = l.prefix + "[" + component + "] "
	return &c
}

// Level returns the configured level.
func (l *Logger) Level() Level {
	return l.level
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.logf(LevelError, "[ERROR] ", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.logf(LevelWarn, "[WARN] ", format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.logf(LevelInfo, "[INFO] ", format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.logf(LevelDebug, "[DEBUG] ", format, args...)
}

func (l *Logger) logf(level Level, tag, format string, args ...interface{}) {
	if l.level < level {
		return
	}
	l.out.Printf(tag+l.prefix+format, args...)
}
