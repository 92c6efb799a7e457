package mocksmtpd

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Recorder accumulates envelope events of one mail transaction. Every method returns
// nil when event is accepted, ErrorSMTP when command is rejected, or DropConnectionError
// when connection has to be closed.
type Recorder interface {
	// From is called when MAIL FROM command is accepted
	From(ctx context.Context, address string, params []Parameter) error
	// Rcpt is called for each RCPT TO command accepted
	Rcpt(ctx context.Context, address string, params []Parameter) error
	// Data is called when message body is received, it returns complete Mail
	Data(ctx context.Context, message []byte) (Mail, error)
}

// RecorderFactory creates Recorder for new mail transaction
type RecorderFactory func(transaction *Transaction) Recorder

// MailRecorder is default Recorder. It applies mock Behaviors to each event
// and saves complete Mail into Repository.
type MailRecorder struct {
	Behaviors  *Behaviors
	Repository Repository

	envelope Envelope
}

// From remembers sender
func (r *MailRecorder) From(_ context.Context, address string, params []Parameter) error {
	err := r.Behaviors.behave(CommandMailFrom, address)
	if err != nil {
		return err
	}
	r.envelope.From = address
	r.envelope.FromParameters = params
	return nil
}

// Rcpt remembers recipient
func (r *MailRecorder) Rcpt(_ context.Context, address string, params []Parameter) error {
	err := r.Behaviors.behave(CommandRcptTo, address)
	if err != nil {
		return err
	}
	r.envelope.Recipients = append(r.envelope.Recipients, Recipient{
		Address:    address,
		Parameters: params,
	})
	return nil
}

// Data builds Mail and stores it
func (r *MailRecorder) Data(ctx context.Context, message []byte) (mail Mail, err error) {
	err = r.Behaviors.behave(CommandData, string(message))
	if err != nil {
		return mail, err
	}
	mail = Mail{
		ID:         ulid.Make().String(),
		Envelope:   r.envelope,
		Message:    string(message),
		ReceivedAt: time.Now(),
	}
	if r.Repository == nil {
		return mail, nil
	}
	err = r.Repository.Store(ctx, mail)
	if err != nil {
		return mail, fmt.Errorf("while storing mail %s: %w", mail.ID, err)
	}
	return mail, nil
}
