// Package log implements the leveled logger used throughout cardinal.
// Entries fan out to one or more sinks (console, file); the logger handles
// sink failures itself so call sites never need to.
package log

import (
	"fmt"
	"os"
	"strings"
)

// LogLevel is the visibility level of the log output. ERROR is the lowest
// level and VERBOSE the highest.
type LogLevel int

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
	VERBOSE
)

// Logger writes leveled log entries to its sinks. Entries above the
// configured level are dropped.
type Logger struct {
	level LogLevel
	sinks []Sink
}

// NewLogger creates a Logger writing to the given sinks.
func NewLogger(level LogLevel, sinks ...Sink) Logger {
	return Logger{level: level, sinks: sinks}
}

// DefaultLogger creates a Logger with a console sink and, if path is not
// empty, a file sink.
func DefaultLogger(level LogLevel, path string) Logger {
	sinks := []Sink{NewConsole()}
	if path != "" {
		file, err := NewFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "couldn't create log file: %s\n", err)
			os.Exit(1)
		}
		sinks = append(sinks, file)
	}
	return NewLogger(level, sinks...)
}

// ParseLevel maps a level name from a profile to a LogLevel. Unknown names
// fall back to INFO.
func ParseLevel(name string) LogLevel {
	switch strings.ToLower(name) {
	case "error":
		return ERROR
	case "warn":
		return WARN
	case "info":
		return INFO
	case "debug":
		return DEBUG
	case "verbose":
		return VERBOSE
	default:
		return INFO
	}
}

// SetLevel sets the log visibility level.
func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Logger) write(level LogLevel, name string, message string, args ...any) {
	if l.level < level {
		return
	}
	formatted := fmt.Sprintf(message, args...)
	for _, sink := range l.sinks {
		if err := sink.Write(name, formatted); err != nil {
			fmt.Fprintf(os.Stderr, "failed log write: %s\n", err)
		}
	}
}

// Error writes an ERROR entry. It is never filtered.
func (l *Logger) Error(message string, args ...any) {
	l.write(ERROR, "ERROR", message, args...)
}

// Warn writes a WARN entry if the level allows it.
func (l *Logger) Warn(message string, args ...any) {
	l.write(WARN, "WARN", message, args...)
}

// Info writes an INFO entry if the level allows it.
func (l *Logger) Info(message string, args ...any) {
	l.write(INFO, "INFO", message, args...)
}

// Debug writes a DEBUG entry if the level allows it.
func (l *Logger) Debug(message string, args ...any) {
	l.write(DEBUG, "DEBUG", message, args...)
}

// Verbose writes a VERBOSE entry if the level allows it.
func (l *Logger) Verbose(message string, args ...any) {
	l.write(VERBOSE, "VERBOSE", message, args...)
}

// Close closes all sinks.
func (l *Logger) Close() {
	for _, sink := range l.sinks {
		if err := sink.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log sink: %s\n", err)
		}
	}
}
