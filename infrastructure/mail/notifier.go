// Package mail sends contact-form notifications to the site owner over SMTP.
package mail

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"portfolio-backend/domain/core/entities"
)

// Config holds the SMTP account. Mail is sent from and to User.
type Config struct {
	User          string
	AppPassword   string
	Host          string
	Port          int
	SpreadsheetID string
	Timeout       time.Duration
}

// Configured reports whether credentials are present
func (c Config) Configured() bool {
	return c.User != "" && c.AppPassword != ""
}

// SheetURL links to the spreadsheet holding all submissions
func (c Config) SheetURL() string {
	return "https://docs.google.com/spreadsheets/d/" + c.SpreadsheetID
}

// Sender is the part of *gomail.Client the notifier uses
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*gomail.Msg) error
	DialWithContext(ctx context.Context) error
	Close() error
}

// Notifier emails each contact submission
type Notifier struct {
	cfg    Config
	sender Sender
	logger *zap.Logger
}

// NewNotifier dials lazily; construction only validates the options
func NewNotifier(cfg Config, logger *zap.Logger) (*Notifier, error) {
	if !cfg.Configured() {
		logger.Warn("Email service not configured, set EMAIL_USER and EMAIL_APP_PASSWORD")
		return &Notifier{cfg: cfg, logger: logger}, nil
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	client, err := gomail.NewClient(cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
		gomail.WithUsername(cfg.User),
		gomail.WithPassword(cfg.AppPassword),
		gomail.WithTimeout(cfg.Timeout),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create smtp client: %w", err)
	}
	return &Notifier{cfg: cfg, sender: client, logger: logger}, nil
}

// NewNotifierWithSender is used by tests to capture outgoing messages
func NewNotifierWithSender(cfg Config, sender Sender, logger *zap.Logger) *Notifier {
	return &Notifier{cfg: cfg, sender: sender, logger: logger}
}

// Configured reports whether SMTP credentials and a sender are present
func (n *Notifier) Configured() bool {
	return n.cfg.Configured() && n.sender != nil
}

// NotifyContact sends one message describing msg
func (n *Notifier) NotifyContact(ctx context.Context, msg entities.ContactMessage) error {
	if !n.Configured() {
		n.logger.Warn("Email service not configured, skipping notification")
		return nil
	}

	m, err := n.Build(msg)
	if err != nil {
		return err
	}
	if err := n.sender.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// Verify dials and authenticates without sending anything
func (n *Notifier) Verify(ctx context.Context) error {
	if !n.Configured() {
		return errors.New("email service not configured")
	}
	if err := n.sender.DialWithContext(ctx); err != nil {
		return fmt.Errorf("email verification failed: %w", err)
	}
	return n.sender.Close()
}

// Build assembles the notification message
func (n *Notifier) Build(msg entities.ContactMessage) (*gomail.Msg, error) {
	html, text, err := Render(msg, n.cfg.SheetURL())
	if err != nil {
		return nil, err
	}

	m := gomail.NewMsg()
	if err := m.From(n.cfg.User); err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(n.cfg.User); err != nil {
		return nil, fmt.Errorf("invalid to address: %w", err)
	}
	// a malformed visitor address should not block the notification
	if err := m.ReplyTo(msg.Email); err != nil {
		n.logger.Debug("Skipping reply-to", zap.String("email", msg.Email), zap.Error(err))
	}
	m.Subject("🔔 New Portfolio Contact: " + msg.Name)
	m.SetBodyString(gomail.TypeTextHTML, html)
	m.AddAlternativeString(gomail.TypeTextPlain, text)
	return m, nil
}

type templateData struct {
	entities.ContactMessage
	Received string
	SheetURL string
}

// Render produces the HTML and plain-text bodies. HTML output is escaped.
func Render(msg entities.ContactMessage, sheetURL string) (string, string, error) {
	data := templateData{ContactMessage: msg, Received: receivedAt(msg.Timestamp), SheetURL: sheetURL}

	var html, text bytes.Buffer
	if err := htmlBody.Execute(&html, data); err != nil {
		return "", "", fmt.Errorf("failed to render html body: %w", err)
	}
	if err := textBody.Execute(&text, data); err != nil {
		return "", "", fmt.Errorf("failed to render text body: %w", err)
	}
	return html.String(), text.String(), nil
}

func receivedAt(ts string) string {
	t, err := time.Parse(entities.TimestampLayout, ts)
	if err != nil {
		return ts
	}
	return t.UTC().Format("Monday, January 2, 2006 at 03:04 PM MST")
}

var htmlBody = htmltemplate.Must(htmltemplate.New("contact.html").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; background-color: #0a0a0a; color: #ffffff; margin: 0; padding: 0; }
  .container { max-width: 600px; margin: 0 auto; padding: 40px 20px; }
  .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); padding: 30px; border-radius: 12px 12px 0 0; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; font-weight: 700; }
  .content { background: rgba(255, 255, 255, 0.05); border: 1px solid rgba(255, 255, 255, 0.1); border-top: none; border-radius: 0 0 12px 12px; padding: 30px; }
  .field { margin-bottom: 24px; }
  .field-label { font-size: 12px; font-weight: 600; color: #9ca3af; text-transform: uppercase; letter-spacing: 0.5px; margin-bottom: 8px; }
  .field-value { font-size: 16px; color: #ffffff; line-height: 1.6; }
  .message-box { background: rgba(0, 0, 0, 0.3); border: 1px solid rgba(255, 255, 255, 0.1); border-radius: 8px; padding: 16px; margin-top: 8px; white-space: pre-wrap; word-wrap: break-word; }
  .footer { text-align: center; margin-top: 32px; padding-top: 24px; border-top: 1px solid rgba(255, 255, 255, 0.1); color: #9ca3af; font-size: 12px; }
  .reply-button { display: inline-block; background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: #ffffff; text-decoration: none; padding: 12px 24px; border-radius: 8px; font-weight: 600; margin-top: 20px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h1>🔔 New Contact Form Submission</h1></div>
  <div class="content">
    <div class="field"><div class="field-label">From</div><div class="field-value">{{.Name}}</div></div>
    <div class="field"><div class="field-label">Email</div><div class="field-value"><a href="mailto:{{.Email}}" style="color: #667eea; text-decoration: none;">{{.Email}}</a></div></div>
    <div class="field"><div class="field-label">Subject</div><div class="field-value">{{.Subject}}</div></div>
    <div class="field"><div class="field-label">Received</div><div class="field-value">{{.Received}}</div></div>
    <div class="field"><div class="field-label">Message</div><div class="message-box">{{.Message}}</div></div>
    <div style="text-align: center;"><a href="mailto:{{.Email}}?subject=Re: Your message on my portfolio" class="reply-button">Reply to {{.Name}} →</a></div>
    <div class="footer">📊 View all submissions in your <a href="{{.SheetURL}}" style="color: #667eea;">Google Sheet</a></div>
  </div>
</div>
</body>
</html>
`))

var textBody = texttemplate.Must(texttemplate.New("contact.txt").Parse(`New Portfolio Contact Form Submission

From: {{.Name}}
Email: {{.Email}}
Subject: {{.Subject}}
Received: {{.Received}}

Message:
{{.Message}}

---
Reply to: {{.Email}}
View all submissions: {{.SheetURL}}`))
