package mocksmtpd

import "fmt"

func (t *Transaction) handleHELO(cmd command) {
	if len(cmd.fields) < 2 {
		t.SendResponse("501 Syntax: HELO <hostname>")
		return
	}
	// greeting always starts from empty envelope
	t.reset()
	t.LogDebug("HELO <%s> is received...", cmd.fields[1])
	t.HeloName = cmd.fields[1]
	t.Protocol = SMTP
	t.reply(250, t.server.Hostname)
}

func (t *Transaction) extensions() []string {
	return []string{
		fmt.Sprintf("SIZE %d", t.server.MaxMessageSize),
		"8BITMIME",
		"PIPELINING",
	}
}

func (t *Transaction) handleEHLO(cmd command) {
	if len(cmd.fields) < 2 {
		t.SendResponse("501 Syntax: EHLO <hostname>")
		return
	}
	// greeting always starts from empty envelope
	t.reset()
	t.LogDebug("EHLO <%s> is received...", cmd.fields[1])
	t.HeloName = cmd.fields[1]
	t.Protocol = ESMTP
	fmt.Fprintf(t.writer, "250-%s\r\n", t.server.Hostname)
	extensions := t.extensions()
	for _, ext := range extensions[:len(extensions)-1] {
		fmt.Fprintf(t.writer, "250-%s\r\n", ext)
	}
	t.reply(250, extensions[len(extensions)-1])
}
