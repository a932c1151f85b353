package core

import "log"

// Logger is any service that can log messages.
// Extra args are usually errors, or values giving context to the message.
// Implementations must never fail the caller.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
	Fatal(msg string, args ...interface{})
}

// StdLogger is a Logger backed by a *log.Logger. Useful for CLIs and tests.
type StdLogger struct {
	std   *log.Logger
	quiet bool
}

var _ Logger = (*StdLogger)(nil)

func NewStdLogger(std *log.Logger) *StdLogger {
	return &StdLogger{std: std}
}

// NewNopLogger returns a Logger that discards everything but Fatal.
func NewNopLogger() *StdLogger {
	return &StdLogger{std: log.Default(), quiet: true}
}

func (l *StdLogger) print(level, msg string, args []interface{}) {
	if l.quiet {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v", arg)
	}
}

func (l *StdLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l *StdLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l *StdLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l *StdLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l *StdLogger) Fatal(msg string, args ...interface{}) {
	l.quiet = false
	l.print("FATAL", msg, args)
	l.std.Fatal(msg)
}
