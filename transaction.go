package mocksmtpd

import (
	"bufio"
	"context"
	"net"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Protocol represents the protocol used in the SMTP session
type Protocol string

const (
	// SMTP means Simple Mail Transfer Protocol
	SMTP Protocol = "SMTP"

	// ESMTP means Extended Simple Mail Transfer Protocol, because it has some extra features
	// Simple Mail Transfer Protocol doesn't have
	ESMTP Protocol = "ESMTP"
)

// Transaction used to handle all SMTP protocol interactions with client.
// It implements Session for command handlers.
type Transaction struct {
	// ID is unique transaction identificator
	ID string `json:"id"`
	// StartedAt depicts moment when transaction was initiated
	StartedAt time.Time

	// ServerName depicts how out smtp server names itself
	ServerName string
	// Addr depicts network address of remote client
	Addr net.Addr
	// HeloName is how client introduced himself via HELO/EHLO command
	HeloName string
	// Protocol used, SMTP or ESMTP
	Protocol Protocol
	// MailFrom stores address from which this message is originated as client says via `MAIL FROM:`
	MailFrom string
	// DeclaredSize is message size client promised via SIZE parameter of `MAIL FROM:`
	DeclaredSize int
	// RcptTo stores addresses for which this message should be delivered as client says via `RCPT TO:`
	RcptTo []string

	// Body stores unparsed message body
	Body []byte

	// Logger is logging system inherited from server
	Logger Logger
	// Span is OpenTelemetry span covering whole connection
	Span trace.Span

	hasMailFrom bool
	recorder    Recorder

	ctx    context.Context
	cancel context.CancelFunc

	server  *Server
	conn    net.Conn
	reader  *bufio.Reader
	writer  *bufio.Writer
	scanner *bufio.Scanner
	closed  bool
}

// Context returns transaction context, which is canceled when transaction is closed
func (t *Transaction) Context() context.Context {
	if t.ctx == nil {
		return context.TODO()
	}
	return t.ctx
}

/*
 * Session implementation
 */

// HasSender returns true, if MAIL FROM is accepted for current mail transaction
func (t *Transaction) HasSender() bool {
	return t.hasMailFrom
}

// SetHasSender marks mail transaction as having sender
func (t *Transaction) SetHasSender(has bool) {
	t.hasMailFrom = has
}

// MaxMessageSize returns maximum message size server accepts
func (t *Transaction) MaxMessageSize() int {
	return t.server.MaxMessageSize
}

// SetDeclaredSize saves size client promised via SIZE parameter
func (t *Transaction) SetDeclaredSize(size int) {
	t.DeclaredSize = size
}

// OpenTransaction creates Recorder for mail transaction, unless it is already opened
func (t *Transaction) OpenTransaction() {
	if t.recorder != nil {
		return
	}
	t.LogDebug("Opening mail transaction...")
	t.recorder = t.server.NewRecorder(t)
}

// Recorder returns Recorder of opened mail transaction, or nil
func (t *Transaction) Recorder() Recorder {
	return t.recorder
}

// SendResponse sends response line to client
func (t *Transaction) SendResponse(text string) {
	t.LogTrace("sending: %s", text)
	t.writer.WriteString(text)
	t.writer.WriteString("\r\n")
	t.flush()
}
