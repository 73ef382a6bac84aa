package entities

import (
	"strings"
	"time"
)

// TimestampLayout is RFC 3339 in UTC with millisecond precision, matching what
// the contact sheet has always stored
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ContactMessage is a single contact form submission
type ContactMessage struct {
	Name      string `json:"name" validate:"required,max=200"`
	Email     string `json:"email" validate:"required,email,max=320"`
	Subject   string `json:"subject" validate:"required,max=300"`
	Message   string `json:"message" validate:"required,max=10000"`
	Timestamp string `json:"timestamp,omitempty"`
}

// NewContactMessage stamps the submission with now. Values are stored as submitted.
func NewContactMessage(name, email, subject, message string, now time.Time) ContactMessage {
	return ContactMessage{
		Name:      name,
		Email:     email,
		Subject:   subject,
		Message:   message,
		Timestamp: FormatTimestamp(now),
	}
}

// Complete reports whether all four user-supplied fields are non-blank
func (m ContactMessage) Complete() bool {
	for _, v := range []string{m.Name, m.Email, m.Subject, m.Message} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// Row is the sheet layout: timestamp, name, email, subject, message
func (m ContactMessage) Row() []string {
	return []string{m.Timestamp, m.Name, m.Email, m.Subject, m.Message}
}

// FormatTimestamp renders t the way every sheet timestamp is written
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
