package mocksmtpd

import (
	"context"
	"fmt"
	"strings"
)

// Session is per connection state MAIL FROM command consults and mutates
type Session interface {
	// HasSender returns true if MAIL FROM was accepted in current mail transaction
	HasSender() bool
	SetHasSender(bool)
	// MaxMessageSize is limit for message size client can declare
	MaxMessageSize() int
	// SetDeclaredSize saves size client promised via SIZE parameter
	SetDeclaredSize(int)
	// OpenTransaction creates Recorder for mail transaction, unless it is already opened
	OpenTransaction()
	// Recorder returns Recorder of opened mail transaction
	Recorder() Recorder
	// SendResponse sends response line to client
	SendResponse(text string)
}

// MailFromCommand handles MAIL FROM command
type MailFromCommand struct {
	// ValidAddress checks sender address, ValidEmailAddress is used when it is nil
	ValidAddress AddressValidatorFunc
}

// Execute validates MAIL FROM command line and, if it is acceptable, notifies recorder
// and marks session as having sender. Returned DropConnectionError means connection
// must be terminated, any other error is internal failure of recorder.
func (c MailFromCommand) Execute(ctx context.Context, line string, session Session) error {
	if session.HasSender() {
		session.SendResponse(ReplySenderAlreadySpecified)
		return nil
	}
	if strings.TrimSpace(line) == "MAIL FROM:" {
		session.SendResponse(ReplyMailFromSyntax)
		return nil
	}
	args := argPredicate(line)
	if !strings.HasPrefix(strings.ToUpper(args), "FROM:") {
		session.SendResponse(fmt.Sprintf(ReplyMailFromParametersError, args))
		return nil
	}
	address := extractEmailAddress(args, mailFromKeywordLength)
	if !c.validAddress(address) {
		session.SendResponse(fmt.Sprintf(ReplyInvalidEmailAddress, address))
		return nil
	}
	params := parseParameters(args)
	size := declaredSize(args)
	if size > session.MaxMessageSize() {
		session.SendResponse(ReplyMessageSizeExceeded)
		return nil
	}
	session.OpenTransaction()
	err := session.Recorder().From(ctx, address, params)
	if err != nil {
		if _, drop := isDropConnection(err); drop {
			return err
		}
		if rejection, ok := isRejection(err); ok {
			session.SendResponse(rejection.Error())
			return nil
		}
		return fmt.Errorf("while recording sender %s: %w", address, err)
	}
	commitSender(session, size)
	session.SendResponse(ReplyOk)
	return nil
}

func (c MailFromCommand) validAddress(address string) bool {
	if c.ValidAddress == nil {
		return ValidEmailAddress(address)
	}
	return c.ValidAddress(address)
}

// commitSender is the only place MAIL FROM mutates session state. It is not called when
// recorder rejects sender, so transaction stays opened while sender is not marked.
func commitSender(session Session, size int) {
	session.SetDeclaredSize(size)
	session.SetHasSender(true)
}
