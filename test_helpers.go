package mocksmtpd

import (
	"fmt"
	"net"
	"testing"
)

// TestLogger sends transaction logs into testing.T, so they are shown only for failed tests
type TestLogger struct {
	Suite *testing.T
}

func (tl *TestLogger) logf(level string, transaction *Transaction, format string, args ...any) {
	tl.Suite.Logf("%s: [%s] %s %s\n",
		level, tl.Suite.Name(), transaction.ID, fmt.Sprintf(format, args...))
}

// Tracef logs TraceLevel message
func (tl *TestLogger) Tracef(transaction *Transaction, format string, args ...any) {
	tl.logf("TRACE", transaction, format, args...)
}

// Debugf logs DebugLevel message
func (tl *TestLogger) Debugf(transaction *Transaction, format string, args ...any) {
	tl.logf("DEBUG", transaction, format, args...)
}

// Infof logs InfoLevel message
func (tl *TestLogger) Infof(transaction *Transaction, format string, args ...any) {
	tl.logf("INFO", transaction, format, args...)
}

// Warnf logs WarnLevel message
func (tl *TestLogger) Warnf(transaction *Transaction, format string, args ...any) {
	tl.logf("WARN", transaction, format, args...)
}

// Errorf logs ErrorLevel message
func (tl *TestLogger) Errorf(transaction *Transaction, format string, args ...any) {
	tl.logf("ERROR", transaction, format, args...)
}

// Fatalf logs FatalLevel message and marks test as failed
func (tl *TestLogger) Fatalf(transaction *Transaction, format string, args ...any) {
	tl.logf("FATAL", transaction, format, args...)
	tl.Suite.Errorf(format, args...)
}

// RunTestServer starts server on random local port, closer stops it and waits for all
// transactions to finish
func RunTestServer(t *testing.T, server *Server) (addr string, closer func()) {
	if server.Logger == nil {
		server.Logger = &TestLogger{Suite: t}
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	server.configureDefaults()
	go func() {
		serveErr := server.Serve(ln)
		if serveErr != nil && serveErr != ErrServerClosed {
			t.Logf("%s : while serving on %s", serveErr, ln.Addr())
		}
	}()
	return ln.Addr().String(), func() {
		server.Shutdown(true)
		ln.Close()
	}
}
