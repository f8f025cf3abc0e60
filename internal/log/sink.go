package log

// Sink receives formatted log entries. Console and File implement it.
type Sink interface {
	Write(level string, message string) error
	Close() error
}
