// Package logging provides the leveled, component-prefixed logger used by
// the HTTP layer and the entrypoints. Verbosity comes from LOG_LEVEL.
package logging

import (
	"log"
	"os"
)

// Level is the logging verbosity.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// Logger writes leveled messages tagged with a component name.
type Logger struct {
	component string
	level     Level
}

// New creates a logger for a component at an explicit level.
func New(component string, level Level) *Logger {
	return &Logger{component: component, level: level}
}

// ForComponent creates a logger whose level follows the LOG_LEVEL
// environment variable, defaulting to info.
func ForComponent(component string) *Logger {
	level := LevelInfo
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LevelError
	case "WARN":
		level = LevelWarn
	case "DEBUG":
		level = LevelDebug
	}
	return New(component, level)
}

func (l *Logger) printf(prefix, format string, args ...interface{}) {
	log.Printf("["+l.component+"] "+prefix+format, args...)
}

// Error logs unconditionally.
func (l *Logger) Error(format string, args ...interface{}) {
	l.printf("ERROR: ", format, args...)
}

// Warn logs at warn level and above.
func (l *Logger) Warn(format string, args ...interface{}) {
	if l.level >= LevelWarn {
		l.printf("WARN: ", format, args...)
	}
}

// Info logs at info level and above.
func (l *Logger) Info(format string, args ...interface{}) {
	if l.level >= LevelInfo {
		l.printf("", format, args...)
	}
}

// Debug logs only at debug level.
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.printf("DEBUG: ", format, args...)
	}
}
