package mocksmtpd

import (
	"context"
	"net/smtp"
	"testing"

	"github.com/vodolaz095/mocksmtpd/internal"
)

func TestMailFromOverWire(t *testing.T) {
	server := &Server{MaxMessageSize: 100}
	addr, closer := RunTestServer(t, server)
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	cases := []struct {
		line string
		code int
	}{
		{"MAIL FROM:", 501},
		{"MAIL sender@example.org", 501},
		{"MAIL FROM:<not-an-address>", 553},
		{"MAIL FROM:<sender@example.org> SIZE=101", 552},
		{"MAIL FROM:<sender@example.org> SIZE=100000000000000000000000", 552},
		{"mail from:<sender@example.org> BODY=8BITMIME SIZE=100", 250},
		{"MAIL FROM:<sender@example.org>", 503},
	}
	for i := range cases {
		err = internal.DoCommand(c.Text, cases[i].code, "%s", cases[i].line)
		if err != nil {
			t.Errorf("%s : while sending %q, expecting %v", err, cases[i].line, cases[i].code)
		}
	}
	if err = c.Rcpt("recipient@example.net"); err != nil {
		t.Errorf("RCPT failed: %v", err)
	}
	wc, err := c.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if _, err = wc.Write([]byte("Subject: test\r\n\r\nHello\r\n")); err != nil {
		t.Errorf("Data body failed: %v", err)
	}
	if err = wc.Close(); err != nil {
		t.Errorf("Data close failed: %v", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("QUIT failed: %v", err)
	}
	mails, err := server.Repository.List(context.TODO())
	if err != nil {
		t.Fatalf("%s : while listing mails", err)
	}
	if len(mails) != 1 {
		t.Fatalf("wrong number of mails %v", len(mails))
	}
	params := mails[0].Envelope.FromParameters
	if len(params) != 2 || params[0].String() != "BODY=8BITMIME" || params[1].String() != "SIZE=100" {
		t.Errorf("wrong sender parameters %v", params)
	}
}

func TestNullSenderOverWire(t *testing.T) {
	addr, closer := RunTestServer(t, &Server{})
	defer closer()
	c, err := smtp.Dial(addr)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	if err = internal.DoCommand(c.Text, 250, "MAIL FROM:<>"); err != nil {
		t.Errorf("null sender is not accepted: %v", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("QUIT failed: %v", err)
	}
}

func TestMailFromRecorderFailure(t *testing.T) {
	addr, closer := RunTestServer(t, &Server{
		RecorderFactory: func(_ *Transaction) Recorder {
			return &MailRecorder{Repository: &brokenRepository{}}
		},
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
	wc, err := c.Data()
	if err != nil {
		t.Fatalf("Data failed: %v", err)
	}
	if _, err = wc.Write([]byte("Subject: test\r\n\r\nHello\r\n")); err != nil {
		t.Errorf("Data body failed: %v", err)
	}
	if err = wc.Close(); err == nil {
		t.Error("broken repository error is not reported")
	} else if err.Error() != "451 4.3.0 Error: local error in processing" {
		t.Errorf("unexpected error %s", err)
	}
	if err = internal.DoCommand(c.Text, 250, "NOOP"); err != nil {
		t.Errorf("connection is not usable after local error: %v", err)
	}
	if err = c.Quit(); err != nil {
		t.Errorf("QUIT failed: %v", err)
	}
}
