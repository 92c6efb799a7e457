package mocksmtpd

import "time"

//go:generate msgp -file=mail.go -o=mail_gen.go -io=false -tests=false

//msgp:tag json
//msgp:tuple Parameter

// Parameter is ESMTP extension parameter, like SIZE=1024 or BODY=8BITMIME, as client sent it
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Recipient is address client provided via RCPT TO with parameters of this command
type Recipient struct {
	Address    string      `json:"address"`
	Parameters []Parameter `json:"parameters"`
}

// Envelope is everything client said about message before DATA
type Envelope struct {
	From           string      `json:"from"`
	FromParameters []Parameter `json:"fromParameters"`
	Recipients     []Recipient `json:"recipients"`
}

// Mail is record of one message delivered to mock server, it is used by tests to assert
// what was sent
type Mail struct {
	ID         string    `json:"id"`
	Envelope   Envelope  `json:"envelope"`
	Message    string    `json:"message"`
	ReceivedAt time.Time `json:"receivedAt"`
}

// RecipientAddresses returns addresses of all recipients in order they were accepted
func (m *Mail) RecipientAddresses() []string {
	ret := make([]string, len(m.Envelope.Recipients))
	for i := range m.Envelope.Recipients {
		ret[i] = m.Envelope.Recipients[i].Address
	}
	return ret
}
