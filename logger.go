package mocksmtpd

import (
	"fmt"
	"log"
	"strings"
)

// Logger is interface all Server loggers must satisfy
type Logger interface {
	Tracef(transaction *Transaction, format string, args ...any)
	Debugf(transaction *Transaction, format string, args ...any)
	Infof(transaction *Transaction, format string, args ...any)
	Warnf(transaction *Transaction, format string, args ...any)
	Errorf(transaction *Transaction, format string, args ...any)
	Fatalf(transaction *Transaction, format string, args ...any)
}

// LoggerLevel describes logging level like JournalD has by
// https://github.com/coreos/go-systemd/blob/main/journal/journal.go
type LoggerLevel uint8

// TraceLevel is used when we record raw SMTP protocol lines being sent/received
const TraceLevel LoggerLevel = 8

// DebugLevel is used for command handling details useful when test fails
const DebugLevel LoggerLevel = 7

// InfoLevel is used for recorded mails, transactions started and finished
const InfoLevel LoggerLevel = 6

// WarnLevel is used when connection is dropped by mock behavior
const WarnLevel LoggerLevel = 4

// ErrorLevel is used when repository or mail handler fails
const ErrorLevel LoggerLevel = 3

// FatalLevel is used for errors forcing application to stop
const FatalLevel LoggerLevel = 2

var loggerLevelNames = map[string]LoggerLevel{
	"trace": TraceLevel,
	"debug": DebugLevel,
	"info":  InfoLevel,
	"warn":  WarnLevel,
	"error": ErrorLevel,
	"fatal": FatalLevel,
}

// ParseLoggerLevel converts level name like `debug` into LoggerLevel
func ParseLoggerLevel(name string) (LoggerLevel, error) {
	level, found := loggerLevelNames[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		return InfoLevel, fmt.Errorf("unknown logger level %q", name)
	}
	return level, nil
}

// String returns level name
func (l LoggerLevel) String() string {
	for name, level := range loggerLevelNames {
		if level == l {
			return name
		}
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// DefaultLogger is logger by default using standard library logger as backend https://pkg.go.dev/log
type DefaultLogger struct {
	*log.Logger
	Level LoggerLevel
}

func (d *DefaultLogger) printf(level LoggerLevel, transaction *Transaction, format string, args ...any) {
	if d.Level >= level {
		d.Printf("%s [%s]: %s", strings.ToUpper(level.String()), transaction.ID, fmt.Sprintf(format, args...))
	}
}

// Tracef sends TraceLevel message
func (d *DefaultLogger) Tracef(transaction *Transaction, format string, args ...any) {
	d.printf(TraceLevel, transaction, format, args...)
}

// Debugf sends DebugLevel message
func (d *DefaultLogger) Debugf(transaction *Transaction, format string, args ...any) {
	d.printf(DebugLevel, transaction, format, args...)
}

// Infof sends InfoLevel message
func (d *DefaultLogger) Infof(transaction *Transaction, format string, args ...any) {
	d.printf(InfoLevel, transaction, format, args...)
}

// Warnf sends WarnLevel message
func (d *DefaultLogger) Warnf(transaction *Transaction, format string, args ...any) {
	d.printf(WarnLevel, transaction, format, args...)
}

// Errorf sends ErrorLevel message
func (d *DefaultLogger) Errorf(transaction *Transaction, format string, args ...any) {
	d.printf(ErrorLevel, transaction, format, args...)
}

// Fatalf sends FatalLevel message and stops application with exit code 1
func (d *DefaultLogger) Fatalf(transaction *Transaction, format string, args ...any) {
	d.Logger.Fatalf("FATAL [%s]: %s", transaction.ID, fmt.Sprintf(format, args...))
}
