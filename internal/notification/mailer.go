// Package notification sends booking confirmation emails.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-gin-cinema-booking/pkg/logger"

	"go.uber.org/zap"
)

type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type BrevoConfig struct {
	APIURL      string
	APIKey      string
	SenderEmail string
	SenderName  string
}

// BrevoMailer sends through Brevo's transactional email API.
type BrevoMailer struct {
	cfg        BrevoConfig
	httpClient *http.Client
}

type brevoPayload struct {
	Sender      map[string]string   `json:"sender"`
	To          []map[string]string `json:"to"`
	Subject     string              `json:"subject"`
	HTMLContent string              `json:"htmlContent"`
}

func NewBrevoMailer(cfg BrevoConfig) *BrevoMailer {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.brevo.com/v3/smtp/email"
	}
	return &BrevoMailer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewMailer picks Brevo when an API key is configured, else logs only.
func NewMailer(cfg BrevoConfig) Mailer {
	if cfg.APIKey == "" {
		logger.WithComponent("mailer").Warn("mail api key not configured, confirmation emails will only be logged")
		return &LogMailer{}
	}
	return NewBrevoMailer(cfg)
}

func (m *BrevoMailer) Send(ctx context.Context, msg Message) error {
	if msg.ToEmail == "" || !strings.Contains(msg.ToEmail, "@") {
		return fmt.Errorf("invalid recipient email: %q", msg.ToEmail)
	}

	recipientName := msg.ToName
	if recipientName == "" {
		recipientName = msg.ToEmail[:strings.Index(msg.ToEmail, "@")]
	}

	payload := brevoPayload{
		Sender:      map[string]string{"name": m.cfg.SenderName, "email": m.cfg.SenderEmail},
		To:          []map[string]string{{"email": msg.ToEmail, "name": recipientName}},
		Subject:     msg.Subject,
		HTMLContent: msg.HTML,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create email request: %w", err)
	}
	req.Header.Set("accept", "application/json")
	req.Header.Set("api-key", m.cfg.APIKey)
	req.Header.Set("content-type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send email request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("brevo returned %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	return nil
}

// LogMailer writes the message to the log instead of sending it.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	logger.WithComponent("mailer").Info("confirmation email (not sent)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}
