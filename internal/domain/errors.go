package domain

import "errors"

// Webhook gateway error types

var (
	// ErrUnauthorized indicates the webhook signature was missing or did not match
	ErrUnauthorized = errors.New("invalid webhook signature")

	// ErrInvalidPayload indicates the webhook body was not a valid JSON envelope
	ErrInvalidPayload = errors.New("invalid webhook payload")

	// ErrProcessorUnavailable indicates the downstream processor could not be reached
	ErrProcessorUnavailable = errors.New("webhook processor unavailable")

	// ErrInvalidRequest indicates the processor rejected the notification (4xx client errors)
	ErrInvalidRequest = errors.New("invalid request")
)
