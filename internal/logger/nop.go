package logger

// nopLogger discards everything. Tests and optional dependencies use it
// in place of a real logger.
type nopLogger struct{}

// NewNop returns a logger that drops all output.
func NewNop() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(msg string, fields ...Field) {}
func (nopLogger) Info(msg string, fields ...Field)  {}
func (nopLogger) Warn(msg string, fields ...Field)  {}
func (nopLogger) Error(msg string, fields ...Field) {}

// Fatal does not exit; a discarded fatal still returns to the caller.
func (nopLogger) Fatal(msg string, fields ...Field) {}

func (l nopLogger) With(fields ...Field) Logger { return l }

func (nopLogger) Sync() error { return nil }
