package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// MakeTestMessage makes RFC 5322 message from sender to recipients, every message has unique Message-Id
func MakeTestMessage(from string, to ...string) string {
	now := time.Now()
	recipients := strings.Join(to, ", ")
	var b strings.Builder
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", recipients)
	fmt.Fprintf(&b, "Subject: Test email send on %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-Id: <%s@mocksmtpd.local>\r\n", ulid.Make())
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "This is test message send from %s to %s on %s\r\n", from, recipients, now.Format(time.Stamp))
	return b.String()
}
