package mocksmtpd

// Reply lines sent by command handlers. SMTP clients used in tests match
// them literally, so they must not change.
const (
	ReplyOk                      = "250 Ok"
	ReplySenderAlreadySpecified  = "503 Sender already specified."
	ReplyMailFromSyntax          = "501 Syntax: MAIL FROM: <address>"
	ReplyMailFromParametersError = "501 Syntax: MAIL FROM: <address>  Error in parameters: \"%s\""
	ReplyMessageSizeExceeded     = "552 5.3.4 Message size exceeds fixed limit"
	ReplyInvalidEmailAddress     = "553 <%s> Invalid email address."

	ReplyRcptToSyntax       = "501 Syntax: RCPT TO: <address>"
	ReplyNeedMailCommand    = "503 5.5.1 Error: need MAIL command"
	ReplyNeedRcptCommand    = "503 Error: need RCPT command"
	ReplyTooManyRecipients  = "452 Error: too many recipients"
	ReplyStartMailInput     = "354 End data with <CR><LF>.<CR><LF>"
	ReplyNotImplemented     = "500 Error: command not implemented"
	ReplyServiceUnavailable = "421 Too many connections, try again later"
	ReplyLineTooLong        = "500 Line too long"
	ReplyBye                = "221 Bye"
)

// length of "FROM:" and "TO:" keywords preceding address in MAIL and RCPT arguments
const (
	mailFromKeywordLength = 5
	rcptToKeywordLength   = 3
)

// verbLength is length of every SMTP command verb this server supports
const verbLength = 4

// size parameter token as it is searched in lower cased MAIL FROM arguments
const sizeParameterToken = " size="
