package mocksmtpd

func (t *Transaction) handle(line string) {
	t.LogDebug("Command received: %s", line)
	cmd := parseLine(line)
	// Only handlers talking to Recorder can fail, other ones reply by themselves.
	var err error
	switch cmd.action {
	case "HELO":
		t.handleHELO(cmd)
	case "EHLO":
		t.handleEHLO(cmd)
	case "MAIL":
		err = t.handleMAIL(cmd)
	case "RCPT":
		err = t.handleRCPT(cmd)
	case "DATA":
		err = t.handleDATA(cmd)
	case "RSET":
		t.handleRSET(cmd)
	case "NOOP":
		t.handleNOOP(cmd)
	case "QUIT":
		t.handleQUIT(cmd)
	default:
		t.LogDebug("Unsupported command received: %s", line)
		t.SendResponse(ReplyNotImplemented)
	}
	if err != nil {
		t.fail(cmd, err)
	}
}

func (t *Transaction) handleRSET(_ command) {
	t.reset()
	t.SendResponse(ReplyOk)
}

func (t *Transaction) handleNOOP(_ command) {
	t.SendResponse(ReplyOk)
}

func (t *Transaction) handleQUIT(_ command) {
	t.SendResponse(ReplyBye)
	t.close()
}
