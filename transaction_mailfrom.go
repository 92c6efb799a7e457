package mocksmtpd

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (t *Transaction) handleMAIL(cmd command) error {
	ctx, span := t.server.Tracer.Start(t.Context(), "handle_mail_from",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attribute.String("line", cmd.line)),
	)
	defer span.End()
	hadSender := t.hasMailFrom
	err := MailFromCommand{ValidAddress: t.server.AddressValidator}.Execute(ctx, cmd.line, t)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if hadSender || !t.hasMailFrom {
		span.SetStatus(codes.Error, "sender is not accepted")
		return nil
	}
	t.MailFrom = extractEmailAddress(argPredicate(cmd.line), mailFromKeywordLength)
	span.SetAttributes(
		attribute.String("from", t.MailFrom),
		attribute.Int("declared_size", t.DeclaredSize),
	)
	t.Span.SetAttributes(attribute.String("from", t.MailFrom))
	t.LogInfo("MAIL FROM <%s> is accepted with declared size %v", t.MailFrom, t.DeclaredSize)
	span.SetStatus(codes.Ok, "sender accepted")
	return nil
}
