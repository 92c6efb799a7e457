package mocksmtpd

import "fmt"

// LogTrace sends trace level message, raw protocol lines are logged with it
func (t *Transaction) LogTrace(format string, args ...any) {
	t.Logger.Tracef(t, format, args...)
}

// LogDebug sends debug level message
func (t *Transaction) LogDebug(format string, args ...any) {
	t.Logger.Debugf(t, format, args...)
}

// LogInfo sends info level message
func (t *Transaction) LogInfo(format string, args ...any) {
	t.Logger.Infof(t, format, args...)
}

// LogWarn sends warning level message
func (t *Transaction) LogWarn(format string, args ...any) {
	t.Logger.Warnf(t, format, args...)
}

// LogError sends error level message and records error in transaction span
func (t *Transaction) LogError(err error, desc string) {
	if t.Span != nil {
		t.Span.AddEvent(fmt.Sprintf("%s: %s", desc, err))
	}
	t.Logger.Errorf(t, "%s: %v", desc, err)
}
