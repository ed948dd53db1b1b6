package input

import "line-webhook-gateway/internal/domain"

// WebhookService interface - Input port (use case)
// Defines what the application can do with LINE webhook callbacks
type WebhookService interface {
	// HandleCallback verifies, stores and schedules notification for one
	// webhook delivery. body must be the exact raw request bytes; the
	// signature is computed over them. Returns domain.ErrUnauthorized or
	// domain.ErrInvalidPayload for the two caller-visible failures; every
	// other failure is absorbed and only visible in the result counts.
	HandleCallback(body []byte, signature string) (*domain.CallbackResult, error)
}
