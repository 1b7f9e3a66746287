package logging

// NullLogger discards every message. Loader and resolver unit tests use
// it so assertions run against returned values instead of log output.
// Safe for concurrent use by multiple goroutines.
type NullLogger struct{}

// NewNullLogger creates a NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}

func (l *NullLogger) Info(format string, args ...interface{}) {}

func (l *NullLogger) Error(format string, args ...interface{}) {}
