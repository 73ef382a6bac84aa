package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"portfolio-backend/application/ports"
	"portfolio-backend/domain/core/entities"
	"portfolio-backend/domain/events"
	pkgerrors "portfolio-backend/pkg/errors"
	"portfolio-backend/pkg/utils"
)

// Contact submission outcomes, also used as metric labels
const (
	ContactStored     = "stored"
	ContactLoggedOnly = "logged_only"
	ContactFailed     = "failed"
	ContactRejected   = "rejected"
)

const (
	MsgMissingFields   = "Missing required fields"
	MsgContactFailed   = "Failed to submit contact form"
	MsgContactAccepted = "Thank you for your message! I'll get back to you soon."
)

// ContactMetrics counts submission outcomes
type ContactMetrics interface {
	ContactSubmitted(outcome string)
}

// SubmitContactCommand is the raw form input
type SubmitContactCommand struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContactResult reports what happened to an accepted submission
type SubmitContactResult struct {
	Message entities.ContactMessage
	Stored  bool
}

// ContactService stores contact submissions and fans out notifications
type ContactService struct {
	repo      ports.ContactRepository
	notifier  ports.Notifier
	publisher ports.EventPublisher
	metrics   ContactMetrics
	logger    *zap.Logger

	now           func() time.Time
	dispatch      func(func())
	notifyTimeout time.Duration
	inflight      sync.WaitGroup
}

// NewContactService creates the service. notifier, publisher and metrics may be nil.
func NewContactService(
	repo ports.ContactRepository,
	notifier ports.Notifier,
	publisher ports.EventPublisher,
	metrics ContactMetrics,
	logger *zap.Logger,
) *ContactService {
	return &ContactService{
		repo:          repo,
		notifier:      notifier,
		publisher:     publisher,
		metrics:       metrics,
		logger:        logger,
		now:           time.Now,
		dispatch:      func(f func()) { go f() },
		notifyTimeout: 30 * time.Second,
	}
}

// Submit validates and stores one submission. Email and event delivery run after
// the response in the background and never fail the submission.
func (s *ContactService) Submit(ctx context.Context, cmd SubmitContactCommand) (*SubmitContactResult, error) {
	msg := entities.NewContactMessage(cmd.Name, cmd.Email, cmd.Subject, cmd.Message, s.now())

	if !msg.Complete() {
		s.count(ContactRejected)
		return nil, pkgerrors.NewValidationError(MsgMissingFields).WithCode("MISSING_FIELDS")
	}
	if err := utils.ValidateStruct(msg); err != nil {
		s.count(ContactRejected)
		var verrs utils.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, pkgerrors.NewValidationError(verrs[0].Message).WithDetails(verrs.Fields())
		}
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	stored := false
	if s.repo != nil && s.repo.Configured() {
		if err := s.repo.Append(ctx, msg); err != nil {
			s.count(ContactFailed)
			return nil, pkgerrors.NewExternalError("google-sheets", MsgContactFailed, err)
		}
		stored = true
		s.count(ContactStored)
		s.logger.Info("Contact message saved", zap.String("email", msg.Email))
	} else {
		s.count(ContactLoggedOnly)
		s.logger.Info("Contact form submission (sheets not configured)",
			zap.String("timestamp", msg.Timestamp),
			zap.String("name", msg.Name),
			zap.String("email", msg.Email),
			zap.String("subject", msg.Subject),
			zap.String("message", msg.Message),
		)
	}

	s.fanOut(ctx, msg, stored)

	return &SubmitContactResult{Message: msg, Stored: stored}, nil
}

// TestConnection checks the contact sheet is reachable
func (s *ContactService) TestConnection(ctx context.Context) error {
	if s.repo == nil || !s.repo.Configured() {
		return pkgerrors.NewUnavailableError("Google Sheets not configured")
	}
	if err := s.repo.Ping(ctx); err != nil {
		return pkgerrors.NewExternalError("google-sheets", "Google Sheets connection failed", err)
	}
	return nil
}

// Wait blocks until background notifications finish. Lambda calls it before
// returning so the sandbox is not frozen mid-send.
func (s *ContactService) Wait() {
	s.inflight.Wait()
}

func (s *ContactService) fanOut(ctx context.Context, msg entities.ContactMessage, stored bool) {
	notify := s.notifier != nil && s.notifier.Configured()
	if !notify && s.publisher == nil {
		return
	}

	// detached: the request context is cancelled as soon as the response is written
	bg := context.WithoutCancel(ctx)
	s.inflight.Add(1)
	s.dispatch(func() {
		defer s.inflight.Done()
		ctx, cancel := context.WithTimeout(bg, s.notifyTimeout)
		defer cancel()

		if notify {
			if err := s.notifier.NotifyContact(ctx, msg); err != nil {
				s.logger.Error("Failed to send email notification", zap.Error(err))
			} else {
				s.logger.Info("Email notification sent", zap.String("email", msg.Email))
			}
		}

		if s.publisher != nil {
			event := events.NewContactSubmitted(msg.Name, msg.Email, msg.Subject, stored, s.now())
			if err := s.publisher.Publish(ctx, event); err != nil {
				s.logger.Error("Failed to publish contact event", zap.Error(err))
			}
		}
	})
}

func (s *ContactService) count(outcome string) {
	if s.metrics != nil {
		s.metrics.ContactSubmitted(outcome)
	}
}
