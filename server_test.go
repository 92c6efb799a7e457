package mocksmtpd

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"sync"
	"testing"

	"github.com/vodolaz095/mocksmtpd/internal"
)

func TestSMTP(t *testing.T) {
	server := &Server{}
	addr, closer := RunTestServer(t, server)
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err = c.Hello("localhost"); err != nil {
		t.Errorf("HELO failed: %v", err)
	}
	if supported, _ := c.Extension("AUTH"); supported {
		t.Error("AUTH supported")
	}
	if supported, _ := c.Extension("8BITMIME"); !supported {
		t.Error("8BITMIME not supported")
	}
	if supported, param := c.Extension("SIZE"); !supported || param != "10240000" {
		t.Errorf("wrong SIZE extension %v %s", supported, param)
	}
	if supported, _ := c.Extension("STARTTLS"); supported {
		t.Error("STARTTLS supported")
	}
	if err = c.Mail("sender@example.org"); err != nil {
		t.Errorf("Mail failed: %v", err)
	}
	if err = c.Rcpt("recipient@example.net"); err != nil {
		t.Errorf("Rcpt failed: %v", err)
	}
	if err = c.Rcpt("recipient2@example.net"); err != nil {
		t.Errorf("Rcpt2 failed: %v", err)
	}
	wc, err := c.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	_, err = fmt.Fprint(wc, internal.MakeTestMessage("sender@example.org", "recipient@example.net", "recipient2@example.net"))
	if err != nil {
		t.Errorf("Data body failed: %v", err)
	}
	err = wc.Close()
	if err != nil {
		t.Errorf("Data close failed: %v", err)
	}
	err = c.Reset()
	if err != nil {
		t.Errorf("Reset failed: %v", err)
	}
	err = c.Verify("foobar@example.net")
	if err == nil {
		t.Error("Unexpected support for VRFY")
	}
	if err = internal.DoCommand(c.Text, 250, "NOOP"); err != nil {
		t.Errorf("NOOP failed: %v", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("Quit failed: %v", err)
	}

	mails, err := server.Repository.List(context.TODO())
	if err != nil {
		t.Fatalf("%s : while listing mails", err)
	}
	if len(mails) != 1 {
		t.Fatalf("wrong number of mails recorded %v", len(mails))
	}
	mail := mails[0]
	if mail.Envelope.From != "sender@example.org" {
		t.Errorf("wrong sender %s", mail.Envelope.From)
	}
	if len(mail.Envelope.FromParameters) != 1 || mail.Envelope.FromParameters[0].String() != "BODY=8BITMIME" {
		t.Errorf("wrong sender parameters %v", mail.Envelope.FromParameters)
	}
	recipients := mail.RecipientAddresses()
	if len(recipients) != 2 || recipients[0] != "recipient@example.net" || recipients[1] != "recipient2@example.net" {
		t.Errorf("wrong recipients %v", recipients)
	}
	if !strings.Contains(mail.Message, "This is test message send from sender@example.org") {
		t.Errorf("wrong message %s", mail.Message)
	}
	if server.GetMailsRecordedCount() != 1 {
		t.Errorf("wrong mails recorded counter %v", server.GetMailsRecordedCount())
	}
}

func TestListenAndServe(t *testing.T) {
	server := &Server{}
	addr, closer := RunTestServer(t, server)
	closer()
	err := server.ListenAndServe(addr)
	if err != ErrServerClosed {
		t.Errorf("unexpected error %v for server being shut down", err)
	}
}

func TestMaxConnections(t *testing.T) {
	addr, closer := RunTestServer(t, &Server{
		MaxConnections: 1,
	})
	defer closer()
	c1, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("first dial failed: %v", err)
	}
	_, err = smtp.Dial(addr)
	if err == nil {
		t.Error("Dial succeeded despite MaxConnections = 1")
	} else if !strings.HasPrefix(err.Error(), "421") {
		t.Errorf("unexpected error %s", err)
	}
	c1.Close()
}

func TestMaxRecipients(t *testing.T) {
	addr, closer := RunTestServer(t, &Server{
		MaxRecipients: 1,
	})
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err = c.Mail("sender@example.org"); err != nil {
		t.Errorf("MAIL failed: %v", err)
	}
	if err = c.Rcpt("recipient@example.net"); err != nil {
		t.Errorf("RCPT failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 452, "RCPT TO:<recipient2@example.net>"); err != nil {
		t.Errorf("RCPT succeeded despite MaxRecipients = 1: %v", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("QUIT failed: %v", err)
	}
}

func TestMaxMessageSize(t *testing.T) {
	server := &Server{MaxMessageSize: 5}
	addr, closer := RunTestServer(t, server)
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err = c.Mail("sender@example.org"); err != nil {
		t.Errorf("MAIL failed: %v", err)
	}
	if err = c.Rcpt("recipient@example.net"); err != nil {
		t.Errorf("RCPT failed: %v", err)
	}
	wc, err := c.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	_, err = fmt.Fprint(wc, "This can't be in the message")
	if err != nil {
		t.Errorf("Data body failed: %v", err)
	}
	err = wc.Close()
	if err == nil {
		t.Error("Allowed message larger than 5 bytes to pass.")
	} else if !strings.HasPrefix(err.Error(), "552") {
		t.Errorf("unexpected error %s", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("QUIT failed: %v", err)
	}
	count, _ := server.Repository.Count(context.TODO())
	if count != 0 {
		t.Errorf("too big message is recorded")
	}
}

func TestCommandSequence(t *testing.T) {
	addr, closer := RunTestServer(t, &Server{})
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 503, "RCPT TO:<recipient@example.net>"); err != nil {
		t.Errorf("RCPT before MAIL: %v", err)
	}
	if err = internal.DoCommand(c.Text, 503, "DATA"); err != nil {
		t.Errorf("DATA before MAIL: %v", err)
	}
	if err = internal.DoCommand(c.Text, 501, "HELO"); err != nil {
		t.Errorf("HELO without name: %v", err)
	}
	if err = internal.DoCommand(c.Text, 250, "HELO localhost"); err != nil {
		t.Errorf("HELO failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 250, "MAIL FROM:<sender@example.org>"); err != nil {
		t.Errorf("MAIL failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 503, "DATA"); err != nil {
		t.Errorf("DATA before RCPT: %v", err)
	}
	if err = internal.DoCommand(c.Text, 501, "RCPT recipient@example.net"); err != nil {
		t.Errorf("RCPT without TO: %v", err)
	}
	if err = internal.DoCommand(c.Text, 553, "RCPT TO:<>"); err != nil {
		t.Errorf("RCPT with null recipient: %v", err)
	}
	if err = internal.DoCommand(c.Text, 553, "RCPT TO:<recipient.example.net>"); err != nil {
		t.Errorf("RCPT with invalid recipient: %v", err)
	}
	if err = internal.DoCommand(c.Text, 500, "VRFY recipient@example.net"); err != nil {
		t.Errorf("VRFY: %v", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("QUIT failed: %v", err)
	}
}

func TestResetAllowsNewSender(t *testing.T) {
	addr, closer := RunTestServer(t, &Server{})
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 250, "MAIL FROM:<sender@example.org>"); err != nil {
		t.Errorf("MAIL failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 503, "MAIL FROM:<sender@example.org>"); err != nil {
		t.Errorf("second MAIL: %v", err)
	}
	if err = internal.DoCommand(c.Text, 250, "RSET"); err != nil {
		t.Errorf("RSET failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 250, "MAIL FROM:<sender@example.org>"); err != nil {
		t.Errorf("MAIL after RSET failed: %v", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("QUIT failed: %v", err)
	}
}

func TestMailHandlers(t *testing.T) {
	var handled []string
	mu := sync.Mutex{}
	addr, closer := RunTestServer(t, &Server{
		MailHandlers: []MailHandler{
			func(_ context.Context, tr *Transaction, mail Mail) error {
				mu.Lock()
				defer mu.Unlock()
				handled = append(handled, mail.ID)
				if tr.MailFrom != "sender@example.org" {
					t.Errorf("wrong transaction sender %s", tr.MailFrom)
				}
				return fmt.Errorf("this error is only logged")
			},
		},
	})
	defer closer()
	err := smtp.SendMail(addr, nil, "sender@example.org", []string{"recipient@example.net"},
		[]byte(internal.MakeTestMessage("sender@example.org", "recipient@example.net")))
	if err != nil {
		t.Fatalf("%s : while sending mail", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 1 {
		t.Errorf("mail handlers called %v times", len(handled))
	}
}

func TestBehaviorsOverWire(t *testing.T) {
	once := 1
	server := &Server{Behaviors: &Behaviors{}}
	server.Behaviors.Set([]Behavior{
		{
			Command:         CommandMailFrom,
			Condition:       Condition{Operator: OperatorContains, MatchingValue: "greylisted"},
			Response:        Response{Code: 451, Message: "4.7.1 Try again later"},
			NumberOfAnswers: &once,
		},
		{
			Command:   CommandRcptTo,
			Condition: Condition{Operator: OperatorContains, MatchingValue: "unknown"},
			Response:  Response{Code: 550, Message: "5.1.1 No such user"},
		},
		{
			Command:   CommandMailFrom,
			Condition: Condition{Operator: OperatorContains, MatchingValue: "bot"},
			Response:  Response{Code: 421, Message: "4.7.0 Bye"},
		},
	})
	addr, closer := RunTestServer(t, server)
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	err = c.Mail("greylisted@example.org")
	if err == nil || err.Error() != "451 4.7.1 Try again later" {
		t.Errorf("unexpected MAIL result %v", err)
	}
	// rejected sender is not marked, so client can retry right away
	if err = c.Mail("greylisted@example.org"); err != nil {
		t.Errorf("MAIL retry failed: %v", err)
	}
	err = c.Rcpt("unknown@example.net")
	if err == nil || err.Error() != "550 5.1.1 No such user" {
		t.Errorf("unexpected RCPT result %v", err)
	}
	if err = c.Rcpt("known@example.net"); err != nil {
		t.Errorf("RCPT failed: %v", err)
	}
	if err = c.Reset(); err != nil {
		t.Errorf("RSET failed: %v", err)
	}
	err = c.Mail("bot@example.org")
	if err == nil || err.Error() != "421 4.7.0 Bye" {
		t.Errorf("unexpected MAIL result %v", err)
	}
	if err = internal.DoCommand(c.Text, 250, "NOOP"); err == nil {
		t.Error("connection is not dropped")
	}
	c.Close()
}

func TestMetricsHandler(t *testing.T) {
	server := &Server{Hostname: "mx.example.org"}
	addr, closer := RunTestServer(t, server)
	defer closer()
	err := smtp.SendMail(addr, nil, "sender@example.org", []string{"recipient@example.net"},
		[]byte(internal.MakeTestMessage("sender@example.org", "recipient@example.net")))
	if err != nil {
		t.Fatalf("%s : while sending mail", err)
	}
	rec := httptest.NewRecorder()
	server.MetricsHandler()(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	t.Logf("Metrics: %s", body)
	if !strings.Contains(body, "mails_recorded_count{hostname=\"mx.example.org\"} 1 ") {
		t.Errorf("mails are not counted")
	}
	if !strings.Contains(body, "all_transactions_count{hostname=\"mx.example.org\"} 1 ") {
		t.Errorf("transactions are not counted")
	}
	if server.GetBytesRead() == 0 || server.GetBytesWritten() == 0 {
		t.Errorf("bytes are not counted")
	}
	server.ResetCounters()
	if server.GetMailsRecordedCount() != 0 || server.GetBytesRead() != 0 {
		t.Errorf("counters are not reset")
	}
}
