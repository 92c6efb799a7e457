package mocksmtpd

import (
	"net/mail"
	"strings"
)

// AddressValidatorFunc reports whether address extracted from MAIL FROM or RCPT TO is acceptable
type AddressValidatorFunc func(address string) bool

// ValidEmailAddress is default AddressValidatorFunc. Empty address is null
// reverse path `<>` and is considered valid.
func ValidEmailAddress(address string) bool {
	if address == "" {
		return true
	}
	_, err := mail.ParseAddress(address)
	return err == nil
}

// argPredicate returns command arguments following the verb
func argPredicate(line string) string {
	if len(line) < verbLength {
		return ""
	}
	return strings.TrimSpace(line[verbLength:])
}

// extractEmailAddress extracts address starting offset bytes into args.
// Bracketed address ends on first `>`, bare one - on first space.
func extractEmailAddress(args string, offset int) string {
	args = strings.TrimSpace(args)
	if len(args) < offset {
		return ""
	}
	address := strings.TrimSpace(args[offset:])
	if strings.HasPrefix(address, "<") {
		address = address[1:]
		if end := strings.IndexByte(address, '>'); end > -1 {
			address = address[:end]
		}
		return strings.TrimSpace(address)
	}
	if space := strings.IndexByte(address, ' '); space > -1 {
		address = strings.TrimSpace(address[:space])
	}
	return address
}
