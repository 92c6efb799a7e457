package mocksmtpd

import (
	"bytes"
	"fmt"
	"io"
	"net/textproto"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (t *Transaction) handleDATA(_ command) error {
	if !t.hasMailFrom {
		t.LogDebug("DATA called without MAIL FROM!")
		t.SendResponse(ReplyNeedMailCommand)
		return nil
	}
	if len(t.RcptTo) == 0 {
		t.LogDebug("DATA called without RCPT TO!")
		t.SendResponse(ReplyNeedRcptCommand)
		return nil
	}
	ctx, span := t.server.Tracer.Start(t.Context(), "handle_data",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()
	defer t.reset()
	t.SendResponse(ReplyStartMailInput)
	t.conn.SetDeadline(time.Now().Add(t.server.DataTimeout))
	data := bytes.NewBufferString("")
	reader := textproto.NewReader(t.reader).DotReader()
	n, err := io.CopyN(data, reader, int64(t.server.MaxMessageSize)+1)
	if err != nil && err != io.EOF {
		// Network error, ignore
		t.LogDebug("possible network error: %s", err)
		return nil
	}
	if n > int64(t.server.MaxMessageSize) {
		// Discard the rest and report an error.
		_, err = io.Copy(io.Discard, reader)
		if err != nil {
			t.LogDebug("possible network error: %s", err)
			return nil
		}
		t.LogDebug("Message is larger than %v bytes", t.server.MaxMessageSize)
		t.SendResponse(ReplyMessageSizeExceeded)
		return nil
	}
	t.Body = data.Bytes()
	span.SetAttributes(attribute.Int("size", len(t.Body)))
	t.LogDebug("Recording clients message having %v bytes in it", len(t.Body))
	mail, err := t.recorder.Data(ctx, t.Body)
	if err != nil {
		span.RecordError(err)
		err = t.recorderError(err)
		if err != nil {
			return fmt.Errorf("while recording message: %w", err)
		}
		return nil
	}
	t.server.mailsRecorded.Add(1)
	span.SetAttributes(attribute.String("mail_id", mail.ID))
	t.LogInfo("Mail %s from <%s> to %v is recorded", mail.ID, mail.Envelope.From, mail.RecipientAddresses())
	for k := range t.server.MailHandlers {
		err = t.server.MailHandlers[k](ctx, t, mail)
		if err != nil {
			t.LogError(err, fmt.Sprintf("while calling mail handler %v for mail %s", k, mail.ID))
		}
	}
	t.SendResponse(ReplyOk)
	return nil
}
