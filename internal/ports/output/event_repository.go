package output

import (
	"time"

	"github.com/google/uuid"

	"line-webhook-gateway/internal/domain"
)

// EventRepository interface - Output port
// Defines what the application needs from event persistence
type EventRepository interface {
	// Persist inserts the event unconditionally and returns the assigned id
	Persist(event *domain.WebhookEvent) (*uuid.UUID, error)

	// GetByID returns the stored event, or nil when no row matches
	GetByID(id uuid.UUID) (*domain.WebhookEvent, error)

	// ListRecent returns up to limit events, newest first
	ListRecent(limit int) ([]domain.WebhookEvent, error)

	// AggregateStatusCounts buckets rows created within the trailing window
	// into completed/failed/pending counts
	AggregateStatusCounts(window time.Duration) (map[domain.ProcessingStatus]int64, error)
}
