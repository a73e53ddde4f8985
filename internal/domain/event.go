package domain

import (
	"time"

	"github.com/google/uuid"
)

// Analytics event types.
const (
	EventResumeCreated    = "resume_created"
	EventResumeUpdated    = "resume_updated"
	EventPDFDownloaded    = "pdf_downloaded"
	EventTemplateChanged  = "template_changed"
	EventSessionStart     = "session_start"
	EventResumeDeleted    = "resume_deleted"
	EventResumeDuplicated = "resume_duplicated"
)

type AnalyticsEvent struct {
	ID        uuid.UUID      `json:"id"`
	EventType string         `json:"eventType"`
	EventData map[string]any `json:"eventData"`
	UserID    *uuid.UUID     `json:"userId,omitempty"`
	SessionID string         `json:"sessionId,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}
