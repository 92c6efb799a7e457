package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vodolaz095/mocksmtpd"
)

// logrusLogger sends transaction logs to logrus with transaction id and remote address as fields
type logrusLogger struct {
	*logrus.Logger
}

func parseLogLevel(name string) (logrus.Level, error) {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return level, fmt.Errorf("while parsing log level: %w", err)
	}
	return level, nil
}

func newLogger(level logrus.Level) *logrusLogger {
	logger := logrus.New()
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		DisableQuote:    true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return &logrusLogger{Logger: logger}
}

func (l *logrusLogger) entry(transaction *mocksmtpd.Transaction) *logrus.Entry {
	fields := logrus.Fields{"transaction": transaction.ID}
	if transaction.Addr != nil {
		fields["remote_addr"] = transaction.Addr.String()
	}
	return l.WithFields(fields)
}

func (l *logrusLogger) Tracef(transaction *mocksmtpd.Transaction, format string, args ...any) {
	l.entry(transaction).Tracef(format, args...)
}

func (l *logrusLogger) Debugf(transaction *mocksmtpd.Transaction, format string, args ...any) {
	l.entry(transaction).Debugf(format, args...)
}

func (l *logrusLogger) Infof(transaction *mocksmtpd.Transaction, format string, args ...any) {
	l.entry(transaction).Infof(format, args...)
}

func (l *logrusLogger) Warnf(transaction *mocksmtpd.Transaction, format string, args ...any) {
	l.entry(transaction).Warnf(format, args...)
}

func (l *logrusLogger) Errorf(transaction *mocksmtpd.Transaction, format string, args ...any) {
	l.entry(transaction).Errorf(format, args...)
}

func (l *logrusLogger) Fatalf(transaction *mocksmtpd.Transaction, format string, args ...any) {
	l.entry(transaction).Fatalf(format, args...)
}
