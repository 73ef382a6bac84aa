package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is something that already happened
type DomainEvent interface {
	GetEventID() string
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	EventID     string    `json:"event_id"`
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetEventID() string      { return e.EventID }
func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

const EventTypeContactSubmitted = "contact.submitted"

// SourceBackend is the EventBridge source of every event this service emits
const SourceBackend = "portfolio.backend"

// ContactSubmitted is raised after a contact form submission is accepted. It carries
// no message body; subscribers read the sheet if they need it.
type ContactSubmitted struct {
	BaseEvent
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Stored  bool   `json:"stored"`
}

// NewContactSubmitted creates a ContactSubmitted event
func NewContactSubmitted(name, email, subject string, stored bool, at time.Time) ContactSubmitted {
	id := uuid.NewString()
	return ContactSubmitted{
		BaseEvent: BaseEvent{
			EventID:     id,
			AggregateID: id,
			EventType:   EventTypeContactSubmitted,
			Timestamp:   at,
			Version:     1,
		},
		Name:    name,
		Email:   email,
		Subject: subject,
		Stored:  stored,
	}
}
