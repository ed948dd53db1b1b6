package http

import (
	"time"

	"github.com/google/uuid"

	"line-webhook-gateway/internal/domain"
)

type (
	// HealthResponse struct - HTTP response DTO for health checks
	HealthResponse struct {
		Status       string              `json:"status"`
		Service      string              `json:"service"`
		Database     string              `json:"database"`
		Timestamp    string              `json:"timestamp"`
		Env          EnvStatus           `json:"env"`
		Notification *NotificationStatus `json:"notification,omitempty"`
	}

	// EnvStatus struct - Configuration presence report
	// Only booleans: secret values are never echoed.
	EnvStatus struct {
		Env                string `json:"env"`
		HasChannelSecret   bool   `json:"hasChannelSecret"`
		HasProcessorAPIKey bool   `json:"hasProcessorApiKey"`
	}

	// NotificationStatus struct - Debounce snapshot exposed for observability
	NotificationStatus struct {
		PendingNotification bool   `json:"pendingNotification"`
		BatchDelay          string `json:"batchDelay"`
	}

	// MonitoringStatusResponse struct - HTTP response DTO for the status endpoint
	MonitoringStatusResponse struct {
		Timestamp    string                `json:"timestamp"`
		Stats        StatsResponse         `json:"stats"`
		RecentEvents []RecentEventResponse `json:"recentEvents"`
	}

	// StatsResponse struct - Status counts over the trailing window
	StatsResponse struct {
		Completed int64 `json:"completed"`
		Failed    int64 `json:"failed"`
		Pending   int64 `json:"pending"`
	}

	// RecentEventResponse struct - HTTP response DTO for one stored event
	RecentEventResponse struct {
		ID          *uuid.UUID       `json:"id"`
		Channel     string           `json:"channel"`
		Type        domain.EventType `json:"type"`
		Processed   bool             `json:"processed"`
		CreatedAt   *time.Time       `json:"createdAt"`
		ProcessedAt *time.Time       `json:"processedAt"`
		Error       *string          `json:"error"`
	}
)
