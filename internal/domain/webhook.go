package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventType represents the type of webhook event from LINE
type EventType string

const (
	// EventTypeMessage - Message event
	EventTypeMessage EventType = "message"
	// EventTypeFollow - Follow event
	EventTypeFollow EventType = "follow"
	// EventTypeUnfollow - Unfollow event
	EventTypeUnfollow EventType = "unfollow"
	// EventTypeJoin - Join event
	EventTypeJoin EventType = "join"
	// EventTypeLeave - Leave event
	EventTypeLeave EventType = "leave"
	// EventTypeMemberJoined - Member joined event
	EventTypeMemberJoined EventType = "memberJoined"
	// EventTypeMemberLeft - Member left event
	EventTypeMemberLeft EventType = "memberLeft"
	// EventTypePostback - Postback event
	EventTypePostback EventType = "postback"
	// EventTypeVideoPlayComplete - Video play complete event
	EventTypeVideoPlayComplete EventType = "videoPlayComplete"
)

var knownEventTypes = map[EventType]struct{}{
	EventTypeMessage:           {},
	EventTypeFollow:            {},
	EventTypeUnfollow:          {},
	EventTypeJoin:              {},
	EventTypeLeave:             {},
	EventTypeMemberJoined:      {},
	EventTypeMemberLeft:        {},
	EventTypePostback:          {},
	EventTypeVideoPlayComplete: {},
}

// Known reports whether t is one of the event types LINE documents.
func (t EventType) Known() bool {
	_, ok := knownEventTypes[t]
	return ok
}

// ProcessingStatus represents the processing state of a stored event.
// The processed/processed_at/error columns are written by the downstream
// processor service, never by this gateway.
type ProcessingStatus string

const (
	// ProcessingStatusCompleted - processed without error
	ProcessingStatusCompleted ProcessingStatus = "completed"
	// ProcessingStatusFailed - processed with an error recorded
	ProcessingStatusFailed ProcessingStatus = "failed"
	// ProcessingStatusPending - not yet picked up by the processor
	ProcessingStatusPending ProcessingStatus = "pending"
)

// WebhookEvent struct - Core domain entity
// A row is immutable once inserted except for the processed/processed_at/error
// fields, which belong to the downstream processor. Rows are never deleted.
type WebhookEvent struct {
	ID          *uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	Channel     string     `gorm:"type:varchar(64);not null;index" json:"channel"`
	EventType   EventType  `gorm:"type:varchar(32);not null;" json:"event_type"`
	RawData     JSON       `gorm:"type:jsonb;not null;" json:"raw_data"`
	Processed   bool       `gorm:"not null;default:false;" json:"processed"`
	ProcessedAt *time.Time `gorm:"type:timestamp" json:"processed_at"`
	Error       *string    `gorm:"type:text" json:"error"`
	CreatedAt   *time.Time `gorm:"type:timestamp;index" json:"created_at"`
}

// TableName func
func (e *WebhookEvent) TableName() string {
	return "line_webhook_events"
}

// BeforeCreate hook - generates UUID before creating
func (e *WebhookEvent) BeforeCreate(tx *gorm.DB) (err error) {
	uuid, err := uuid.NewRandom() // v4
	if err != nil {
		return err
	}
	e.ID = &uuid
	return nil
}

// WebhookEnvelope represents the body of a LINE webhook callback.
// Events are kept as raw JSON so the stored document is byte-for-byte
// what the platform sent.
type WebhookEnvelope struct {
	Destination string            `json:"destination"`
	Events      []json.RawMessage `json:"events"`
}

// EventHeader holds the few fields the gateway reads out of an event
// before storing it verbatim.
type EventHeader struct {
	Type           EventType `json:"type"`
	WebhookEventID string    `json:"webhookEventId"`
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) {
	if db == nil {
		panic("An error when connect database")
	}

	err := db.AutoMigrate(&WebhookEvent{})
	if err != nil {
		panic(err)
	}
}
