package mail

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"portfolio-backend/domain/core/entities"
)

type fakeSender struct {
	sent    []*gomail.Msg
	sendErr error
	dialErr error
	closed  bool
}

func (f *fakeSender) DialAndSendWithContext(_ context.Context, msgs ...*gomail.Msg) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msgs...)
	return nil
}

func (f *fakeSender) DialWithContext(context.Context) error { return f.dialErr }

func (f *fakeSender) Close() error {
	f.closed = true
	return nil
}

var testConfig = Config{User: "owner@example.com", AppPassword: "pw", Host: "smtp.gmail.com", Port: 587, SpreadsheetID: "sheet-123"}

func testMessage() entities.ContactMessage {
	return entities.NewContactMessage("Ada <script>", "ada@example.com", "Hello", "Line one\nLine two",
		time.Date(2025, 3, 1, 9, 5, 0, 0, time.UTC))
}

func TestRender(t *testing.T) {
	html, text, err := Render(testMessage(), testConfig.SheetURL())

	require.NoError(t, err)
	assert.Contains(t, html, "Ada &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "https://docs.google.com/spreadsheets/d/sheet-123")
	assert.Contains(t, html, "Saturday, March 1, 2025 at 09:05 AM UTC")

	assert.True(t, strings.HasPrefix(text, "New Portfolio Contact Form Submission"))
	assert.Contains(t, text, "From: Ada <script>")
	assert.Contains(t, text, "Line one\nLine two")
	assert.Contains(t, text, "View all submissions: https://docs.google.com/spreadsheets/d/sheet-123")
}

func TestNotifier_NotifyContact(t *testing.T) {
	// Arrange
	sender := &fakeSender{}
	n := NewNotifierWithSender(testConfig, sender, zap.NewNop())

	// Act
	err := n.NotifyContact(context.Background(), testMessage())

	// Assert
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"🔔 New Portfolio Contact: Ada <script>"}, sender.sent[0].GetGenHeader(gomail.HeaderSubject))
	rcpts, err := sender.sent[0].GetRecipients()
	require.NoError(t, err)
	assert.Equal(t, []string{"owner@example.com"}, rcpts)
}

func TestNotifier_SendFailure(t *testing.T) {
	sender := &fakeSender{sendErr: errors.New("535 auth failed")}
	n := NewNotifierWithSender(testConfig, sender, zap.NewNop())

	err := n.NotifyContact(context.Background(), testMessage())

	assert.ErrorContains(t, err, "535 auth failed")
}

func TestNotifier_Unconfigured(t *testing.T) {
	n, err := NewNotifier(Config{}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, n.Configured())
	assert.NoError(t, n.NotifyContact(context.Background(), testMessage()))
	assert.Error(t, n.Verify(context.Background()))
}

func TestNotifier_Verify(t *testing.T) {
	sender := &fakeSender{}
	n := NewNotifierWithSender(testConfig, sender, zap.NewNop())
	require.NoError(t, n.Verify(context.Background()))
	assert.True(t, sender.closed)

	sender = &fakeSender{dialErr: errors.New("refused")}
	n = NewNotifierWithSender(testConfig, sender, zap.NewNop())
	assert.Error(t, n.Verify(context.Background()))
}
