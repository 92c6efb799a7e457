package mocksmtpd

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/codes"
)

func (t *Transaction) serve() {
	defer t.close()
	t.LogInfo("Starting transaction %s for %s.", t.ID, t.Addr)
	t.welcome()
	for {
		for t.scanner.Scan() {
			line := t.scanner.Text()
			t.LogTrace("received: %s", strings.TrimSpace(line))
			t.handle(line)
			if t.closed {
				return
			}
		}
		err := t.scanner.Err()
		if errors.Is(err, bufio.ErrTooLong) {
			t.SendResponse(ReplyLineTooLong)
			// Advance reader to the next newline
			t.reader.ReadString('\n')
			t.scanner = bufio.NewScanner(t.reader)
			// Reset and have the client start over.
			t.reset()
			continue
		}
		break
	}
}

func (t *Transaction) reject() {
	t.SendResponse(ReplyServiceUnavailable)
	t.close()
}

// reset aborts mail transaction, recorder is discarded together with everything it recorded
func (t *Transaction) reset() {
	t.recorder = nil
	t.hasMailFrom = false
	t.DeclaredSize = 0
	t.MailFrom = ""
	t.RcptTo = nil
	t.Body = nil
}

func (t *Transaction) welcome() {
	t.reply(220, t.server.WelcomeMessage)
}

func (t *Transaction) reply(code int, message string) {
	t.SendResponse(fmt.Sprintf("%d %s", code, message))
}

func (t *Transaction) flush() {
	t.conn.SetWriteDeadline(time.Now().Add(t.server.WriteTimeout))
	t.writer.Flush()
	t.conn.SetReadDeadline(time.Now().Add(t.server.ReadTimeout))
}

// recorderError sends rejection to client and returns errors transaction cannot handle by itself
func (t *Transaction) recorderError(err error) error {
	if _, drop := isDropConnection(err); drop {
		return err
	}
	if rejection, ok := isRejection(err); ok {
		t.LogDebug("Recorder rejected command: %s", rejection)
		t.SendResponse(rejection.Error())
		return nil
	}
	return err
}

// fail handles error command handler returned
func (t *Transaction) fail(cmd command, err error) {
	t.Span.RecordError(err)
	if drop, ok := isDropConnection(err); ok {
		t.LogWarn("Dropping connection on %s: %s", cmd.action, drop)
		t.Span.SetStatus(codes.Error, "connection dropped")
		t.SendResponse(drop.Error())
		t.close()
		return
	}
	t.LogError(err, fmt.Sprintf("while handling %s", cmd.action))
	t.reply(451, "4.3.0 Error: local error in processing")
}

func (t *Transaction) close() {
	if t.closed {
		return
	}
	t.closed = true
	t.LogDebug("Closing transaction...")
	t.writer.Flush()
	t.conn.Close()
	t.cancel()
	t.Span.End()
}
