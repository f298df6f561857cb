package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"github.com/chainwatch/chainwatch-go/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	defaultResendURL = "https://api.resend.com/emails"
	defaultTwilioURL = "https://api.twilio.com/2010-04-01"
	defaultFromAddr  = "alerts@resend.dev"

	// Twilio caps SMS body length.
	maxSMSLen = 1600
)

const alertSubject = "Supply Chain Resilience Alert - CRITICAL Risk Detected"

// Config holds alert channel credentials. Any empty channel is simply
// unavailable; sending through it is a no-op reported in the result.
type Config struct {
	ResendAPIKey string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPFrom     string

	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string
}

// Channels reports which delivery channels are configured.
type Channels struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

// Result describes the outcome of one alert dispatch.
type Result struct {
	Email bool   `json:"email"`
	SMS   bool   `json:"sms"`
	Error string `json:"error,omitempty"`
}

// Notifier sends risk alerts over email and optionally SMS.
type Notifier struct {
	cfg        Config
	httpClient *http.Client
	resendURL  string
	twilioURL  string
	logger     *logrus.Logger
}

// NewNotifier creates a Notifier.
func NewNotifier(cfg Config, logger *logrus.Logger) *Notifier {
	if logger == nil {
		logger = logrus.New()
	}
	return &Notifier{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		resendURL:  defaultResendURL,
		twilioURL:  defaultTwilioURL,
		logger:     logger,
	}
}

// IsConfigured reports channel availability.
func (n *Notifier) IsConfigured() Channels {
	email := n.cfg.ResendAPIKey != "" ||
		(n.cfg.SMTPHost != "" && n.cfg.SMTPUser != "" && n.cfg.SMTPPassword != "" && n.cfg.SMTPFrom != "")
	sms := n.cfg.TwilioAccountSID != "" && n.cfg.TwilioAuthToken != "" && n.cfg.TwilioPhoneNumber != ""
	return Channels{Email: email, SMS: sms}
}

// SendReportAlert formats the commodity summary and dispatches it over every
// configured and requested channel. Only commodities matching the severity
// filter appear in the body; callers should pre-filter the list the same way
// to avoid sending empty alerts.
func (n *Notifier) SendReportAlert(ctx context.Context, commodities []models.CommodityReport, recipientEmail, recipientPhone string, severity Severity) Result {
	result := Result{}

	if len(commodities) == 0 {
		result.Error = "no commodities to report"
		return result
	}

	body := FormatBody(commodities, severity)
	channels := n.IsConfigured()

	if channels.Email && recipientEmail != "" {
		var err error
		if n.cfg.ResendAPIKey != "" {
			err = n.sendEmailResend(ctx, recipientEmail, alertSubject, body)
		} else {
			err = n.sendEmailSMTP(recipientEmail, alertSubject, body)
		}
		if err != nil {
			n.logger.WithError(err).Error("email alert failed")
		}
		result.Email = err == nil
	}

	if channels.SMS && recipientPhone != "" {
		if err := n.sendSMSTwilio(ctx, recipientPhone, body); err != nil {
			n.logger.WithError(err).Error("sms alert failed")
		} else {
			result.SMS = true
		}
	}

	if !channels.Email && !channels.SMS {
		result.Error = "email/SMS not configured: set RESEND_API_KEY or SMTP_* env vars"
	}

	return result
}

// sendEmailResend delivers via the Resend HTTP API.
func (n *Notifier) sendEmailResend(ctx context.Context, recipient, subject, body string) error {
	from := n.cfg.SMTPFrom
	if from == "" {
		from = defaultFromAddr
	}

	payload, err := json.Marshal(map[string]any{
		"from":    from,
		"to":      []string{recipient},
		"subject": subject,
		"text":    body,
	})
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.resendURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.ResendAPIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("resend request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("resend: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// sendEmailSMTP delivers via plain SMTP with STARTTLS.
func (n *Notifier) sendEmailSMTP(recipient, subject, body string) error {
	port := n.cfg.SMTPPort
	if port == 0 {
		port = 587
	}
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, port)
	auth := smtp.PlainAuth("", n.cfg.SMTPUser, n.cfg.SMTPPassword, n.cfg.SMTPHost)

	msg := strings.Join([]string{
		"From: " + n.cfg.SMTPFrom,
		"To: " + recipient,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
		"",
		body,
	}, "\r\n")

	if err := smtp.SendMail(addr, auth, n.cfg.SMTPFrom, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// sendSMSTwilio delivers via the Twilio REST API.
func (n *Notifier) sendSMSTwilio(ctx context.Context, recipient, body string) error {
	if len(body) > maxSMSLen {
		body = body[:maxSMSLen]
	}

	endpoint := fmt.Sprintf("%s/Accounts/%s/Messages.json", n.twilioURL, n.cfg.TwilioAccountSID)
	form := url.Values{}
	form.Set("From", n.cfg.TwilioPhoneNumber)
	form.Set("To", recipient)
	form.Set("Body", body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(n.cfg.TwilioAccountSID, n.cfg.TwilioAuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("twilio request: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("twilio: unexpected status %d", resp.StatusCode)
	}
	return nil
}
