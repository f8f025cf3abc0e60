package log

import (
	"fmt"
	"os"
)

// File is a Sink that appends log entries to a file.
type File struct {
	logFile   *os.File
	formatter Formatter
}

// NewFile creates a File sink appending to the file at path, creating it
// with mode 0644 if needed.
func NewFile(path string) (*File, error) {
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return &File{logFile: logFile, formatter: DefaultFormatter()}, nil
}

func (f *File) Write(level string, message string) error {
	_, err := f.logFile.WriteString(f.formatter.Format(level, message))
	return err
}

func (f *File) Close() error {
	return f.logFile.Close()
}
