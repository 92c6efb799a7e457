package mocksmtpd

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (t *Transaction) handleRCPT(cmd command) error {
	ctx, span := t.server.Tracer.Start(t.Context(), "handle_rcpt_to",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("line", cmd.line)),
	)
	defer span.End()
	if !t.hasMailFrom {
		t.SendResponse(ReplyNeedMailCommand)
		return nil
	}
	args := argPredicate(cmd.line)
	if !strings.HasPrefix(strings.ToUpper(args), "TO:") {
		t.SendResponse(ReplyRcptToSyntax)
		return nil
	}
	if len(t.RcptTo) >= t.server.MaxRecipients {
		t.SendResponse(ReplyTooManyRecipients)
		return nil
	}
	address := extractEmailAddress(args, rcptToKeywordLength)
	if address == "" || !t.server.AddressValidator(address) {
		t.SendResponse(fmt.Sprintf(ReplyInvalidEmailAddress, address))
		return nil
	}
	t.LogDebug("Recording recipient %s...", address)
	err := t.recorder.Rcpt(ctx, address, parseParameters(args))
	if err != nil {
		span.RecordError(err)
		err = t.recorderError(err)
		if err != nil {
			return fmt.Errorf("while recording recipient %s: %w", address, err)
		}
		return nil
	}
	t.RcptTo = append(t.RcptTo, address)
	span.SetAttributes(attribute.String("to", address))
	t.LogInfo("Recipient %s will be %v one in transaction", address, len(t.RcptTo))
	t.SendResponse(ReplyOk)
	return nil
}
