package log

import (
	"fmt"
	"strings"
	"time"
)

// Formatter renders log entries from a format string with the variables
// `{ascTime}`, `{level}` and `{message}`, each enclosed in braces.
// `{message}` is compulsory.
type Formatter struct {
	formatStr string
}

// DefaultFormatter returns a Formatter with the standard format string.
func DefaultFormatter() Formatter {
	return Formatter{formatStr: "{ascTime}: [{level}] - {message}"}
}

// NewFormatter returns a Formatter with a user-defined format string.
func NewFormatter(formatStr string) (Formatter, error) {
	if !strings.Contains(formatStr, "{message}") {
		return Formatter{}, fmt.Errorf("missing {message} in format string")
	}
	return Formatter{formatStr: formatStr}, nil
}

// Format replaces all format variables with their values and appends a
// trailing newline.
func (f *Formatter) Format(level string, message string) string {
	replacer := strings.NewReplacer(
		"{ascTime}", time.Now().Format(time.RFC3339),
		"{level}", level,
		"{message}", message,
	)
	return replacer.Replace(f.formatStr) + "\n"
}
