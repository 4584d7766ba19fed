// Package mailer sends transactional email through either the Resend HTTP
// API or plain SMTP, depending on what is configured.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// ErrNotConfigured is returned when no transport (Resend key or SMTP host)
// is available. Callers that batch sends should fail closed on it rather
// than partially sending.
var ErrNotConfigured = errors.New("mailer: no transport configured")

const resendEndpoint = "https://api.resend.com/emails"

// Email is one outbound message. HTMLBody is optional; TextBody is the
// fallback for clients that do not render HTML.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Config selects and parameterizes the transport. ResendAPIKey wins when
// both are set.
type Config struct {
	ResendAPIKey string

	// ResendEndpoint overrides the Resend API URL; tests point it at a
	// local server. Empty means the production endpoint.
	ResendEndpoint string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	From     string
	FromName string
}

// Mailer is safe for concurrent use.
type Mailer struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// New builds a Mailer. It does not validate the transport; use Configured
// to check before starting a batch.
func New(cfg Config, logger *zap.Logger) *Mailer {
	return &Mailer{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
		log:  logger,
	}
}

// Configured reports whether at least one transport can be used.
func (m *Mailer) Configured() bool {
	return m.cfg.ResendAPIKey != "" || m.cfg.SMTPHost != ""
}

// Send delivers one email. Returns ErrNotConfigured when no transport is
// set up; other errors are per-message and safe to count and continue past.
func (m *Mailer) Send(ctx context.Context, msg Email) error {
	switch {
	case m.cfg.ResendAPIKey != "":
		return m.sendResend(ctx, msg)
	case m.cfg.SMTPHost != "":
		return m.sendSMTP(msg)
	default:
		return ErrNotConfigured
	}
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html,omitempty"`
	Text    string `json:"text,omitempty"`
}

func (m *Mailer) sendResend(ctx context.Context, msg Email) error {
	payload := resendRequest{
		From:    fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.From),
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTMLBody,
		Text:    msg.TextBody,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := m.cfg.ResendEndpoint
	if endpoint == "" {
		endpoint = resendEndpoint
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.ResendAPIKey)
	// Resend dedupes retried requests on this key.
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := m.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		m.log.Warn("resend rejected email",
			zap.Int("status", resp.StatusCode),
			zap.String("to", msg.To),
			zap.ByteString("detail", detail))
		return fmt.Errorf("mailer: resend returned status %d", resp.StatusCode)
	}
	return nil
}

func (m *Mailer) sendSMTP(msg Email) error {
	opts := []mail.Option{mail.WithPort(m.cfg.SMTPPort)}
	if m.cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.cfg.SMTPUser),
			mail.WithPassword(m.cfg.SMTPPass),
		)
	}
	client, err := mail.NewClient(m.cfg.SMTPHost, opts...)
	if err != nil {
		return err
	}

	out := mail.NewMsg()
	if err := out.FromFormat(m.cfg.FromName, m.cfg.From); err != nil {
		return err
	}
	if err := out.To(msg.To); err != nil {
		return err
	}
	out.Subject(msg.Subject)
	if msg.HTMLBody != "" {
		out.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
		if msg.TextBody != "" {
			out.AddAlternativeString(mail.TypeTextPlain, msg.TextBody)
		}
	} else {
		out.SetBodyString(mail.TypeTextPlain, msg.TextBody)
	}

	return client.DialAndSend(out)
}
