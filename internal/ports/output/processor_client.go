package output

import (
	"context"

	"line-webhook-gateway/internal/domain"
)

// ProcessorClient interface - Output port
// Defines what the application needs from the downstream processor service
type ProcessorClient interface {
	// ProcessBatch asks the processor to consume queued events, bounded by
	// request.Limit per invocation
	ProcessBatch(ctx context.Context, request domain.ProcessBatchRequest) (*domain.ProcessBatchResponse, error)
}

// EventNotifier interface - Output port
// The one-way signal the ingestion path raises when new events were stored
type EventNotifier interface {
	// Signal is non-blocking and safe to call from concurrent requests
	Signal()
}
