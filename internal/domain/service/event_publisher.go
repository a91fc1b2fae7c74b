package service

import (
	"context"
	"time"
)

// FieldChange is one changed field inside a ChangeEvent.
type FieldChange struct {
	Field string `json:"field"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// ChangeEvent announces that an update changed at least one tracked field
type ChangeEvent struct {
	RequestID string        `json:"request_id,omitempty"` // For distributed tracing
	Namespace string        `json:"namespace"`
	EntityID  string        `json:"entity_id"`
	Subject   string        `json:"subject"`
	SubjectID string        `json:"subject_id"`
	Changes   []FieldChange `json:"changes"`
	Timestamp time.Time     `json:"timestamp"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishChangeEvent publishes a change event to subscribers
	PublishChangeEvent(ctx context.Context, event *ChangeEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
