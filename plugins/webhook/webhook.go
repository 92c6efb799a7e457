package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/vodolaz095/mocksmtpd"
)

// DefaultContentType is used for mails being posted
const DefaultContentType = "application/json"

// Opts used to configure where we post recorded mails
type Opts struct {
	URL        string
	Headers    map[string]string
	HTTPClient *http.Client
}

// MailHandler is mocksmtpd.MailHandler that posts every recorded mail as JSON to webhook URL,
// so test runners can wait for mails instead of polling API
func MailHandler(opts Opts) mocksmtpd.MailHandler {
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	return func(ctx context.Context, transaction *mocksmtpd.Transaction, mail mocksmtpd.Mail) error {
		payload, err := json.Marshal(mail)
		if err != nil {
			return fmt.Errorf("while encoding mail %s: %w", mail.ID, err)
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.URL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("while making request to %s: %w", opts.URL, err)
		}
		req.Header.Set("Content-Type", DefaultContentType)
		req.Header.Set("X-Transaction-Id", transaction.ID)
		if transaction.Addr != nil {
			req.Header.Set("X-Remote-Addr", transaction.Addr.String())
		}
		if transaction.HeloName != "" {
			req.Header.Set("Helo", transaction.HeloName)
		}
		for k, v := range opts.Headers {
			req.Header.Set(k, v)
		}
		res, err := opts.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("while posting mail %s to %s: %w", mail.ID, opts.URL, err)
		}
		if res.Body != nil {
			defer res.Body.Close()
		}
		transaction.LogDebug("Webhook status %s %v", res.Status, res.StatusCode)
		if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
			body, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
			return fmt.Errorf("wrong status %s while posting mail %s to %s: %s",
				res.Status, mail.ID, opts.URL, string(body))
		}
		transaction.LogInfo("Mail %s is posted to %s", mail.ID, opts.URL)
		return nil
	}
}
