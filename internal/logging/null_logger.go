package logging

// NullLogger drops every message. It stands in for the console logger in
// tests and wherever a Logger is required but output is unwanted.
type NullLogger struct{}

// NewNullLogger returns a logger that discards everything.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}

func (l *NullLogger) Info(format string, args ...interface{}) {}

func (l *NullLogger) Error(format string, args ...interface{}) {}
