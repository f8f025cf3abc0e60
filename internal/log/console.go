package log

import (
	"fmt"
	"io"
	"os"
)

// Console is a Sink that writes log entries to standard error.
type Console struct {
	out       io.Writer
	formatter Formatter
}

// NewConsole creates a Console sink with the default formatter.
func NewConsole() *Console {
	return &Console{out: os.Stderr, formatter: DefaultFormatter()}
}

func (c *Console) Write(level string, message string) error {
	_, err := fmt.Fprint(c.out, c.formatter.Format(level, message))
	return err
}

func (c *Console) Close() error {
	return nil
}
