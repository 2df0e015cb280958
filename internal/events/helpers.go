package events

import (
	"fmt"
	"strings"
	"time"
)

// Event types
const (
	TypeWorkflowCompleted = "workflow.completed"
)

// DefaultTopic is used when no topic is configured
const DefaultTopic = "ideaforge.workflow.completed"

const source = "workflow_orchestrator"

// BaseEvent is the envelope shared by every published event
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// NewBaseEvent creates a new base event with defaults
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		ID:        generateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Version:   "1.0",
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	// Format: timestamp_nanoseconds
	now := time.Now()
	return fmt.Sprintf("%d_%d", now.Unix(), now.Nanosecond())
}

// SanitizeUTF8 drops invalid UTF-8 bytes. Completion and search text is not always clean.
func SanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
