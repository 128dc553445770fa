package contact

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
)

// Relay forwards a submission to the site owner.
type Relay interface {
	Name() string
	Send(ctx context.Context, s Submission) error
}

// NoopRelay keeps submissions in the outbox only.
type NoopRelay struct{}

func (NoopRelay) Name() string                             { return "none" }
func (NoopRelay) Send(context.Context, Submission) error { return nil }

// Web3FormsRelay posts the submission to a web3forms-compatible endpoint,
// authenticated by a hidden access key.
type Web3FormsRelay struct {
	Endpoint  string
	AccessKey string
	Client    *http.Client
}

type web3FormsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (r *Web3FormsRelay) Name() string { return "web3forms" }

func (r *Web3FormsRelay) Send(ctx context.Context, s Submission) error {
	if r.AccessKey == "" {
		return fmt.Errorf("web3forms: access key not configured")
	}
	form := url.Values{
		"access_key": {r.AccessKey},
		"subject":    {"Portfolio Contact: " + s.Name},
		"Name":       {s.Name},
		"Email":      {s.Email},
		"Message":    {s.Message},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("web3forms: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("web3forms: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("web3forms: reading response: %w", err)
	}
	var out web3FormsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		if resp.StatusCode/100 != 2 {
			return fmt.Errorf("web3forms: status %d", resp.StatusCode)
		}
		return fmt.Errorf("web3forms: decoding response: %w", err)
	}
	if resp.StatusCode/100 != 2 || !out.Success {
		return fmt.Errorf("web3forms: status %d: %s", resp.StatusCode, out.Message)
	}
	return nil
}

// SendMailFunc matches smtp.SendMail.
type SendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPRelay mails the submission to the owner's inbox.
type SMTPRelay struct {
	Host string
	Port string
	User string
	Pass string
	To   string

	// SendMail defaults to smtp.SendMail.
	SendMail SendMailFunc
}

func (r *SMTPRelay) Name() string { return "smtp" }

func (r *SMTPRelay) Send(_ context.Context, s Submission) error {
	if r.User == "" || r.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	to := r.To
	if to == "" {
		to = r.User
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", s.Name)
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, s.Name, s.Email, s.Message)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + headerSafe(subject) + "\r\n" +
		"From: " + r.User + "\r\n" +
		"Reply-To: " + headerSafe(s.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")

	send := r.SendMail
	if send == nil {
		send = smtp.SendMail
	}
	auth := smtp.PlainAuth("", r.User, r.Pass, r.Host)
	if err := send(r.Host+":"+r.Port, auth, r.User, []string{to}, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}

// headerSafe strips line breaks so visitor input cannot add headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
