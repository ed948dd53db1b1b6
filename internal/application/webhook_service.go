package application

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/output"
)

// WebhookServiceConfig struct - Capability flags for the ingestion pipeline
// The flags collapse the historical per-deployment endpoint variants into one
// configurable core.
type WebhookServiceConfig struct {
	Channel string
	Persist bool
	Notify  bool
}

// WebhookService struct - Application service implementing the ingestion use case
type WebhookService struct {
	validator *SignatureValidator
	eventRepo output.EventRepository
	notifier  output.EventNotifier
	config    WebhookServiceConfig
}

// NewWebhookService func - Creates new webhook service
func NewWebhookService(validator *SignatureValidator, eventRepo output.EventRepository, notifier output.EventNotifier, config WebhookServiceConfig) *WebhookService {
	return &WebhookService{
		validator: validator,
		eventRepo: eventRepo,
		notifier:  notifier,
		config:    config,
	}
}

// HandleCallback func - Use case: ingest one webhook delivery from LINE
// Validates the signature over the exact raw bytes, parses the envelope,
// stores each event independently and signals the notifier when at least one
// event was stored. After authentication succeeds, unexpected failures are
// absorbed here so the transport always answers 200 and LINE does not
// redeliver.
func (s *WebhookService) HandleCallback(body []byte, signature string) (result *domain.CallbackResult, err error) {
	if !s.validator.Validate(body, signature) {
		return nil, domain.ErrUnauthorized
	}

	var envelope domain.WebhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		logrus.Errorf("Invalid JSON payload: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err)
	}

	result = &domain.CallbackResult{}
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Webhook processing error: %v\n%s", r, debug.Stack())
			err = nil
		}
	}()

	logrus.Infof("Processing %d events from LINE", len(envelope.Events))

	for _, raw := range envelope.Events {
		result.EventsReceived++

		var header domain.EventHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			logrus.Errorf("Failed to decode event: %v", err)
			// Continue processing other events
			continue
		}
		if !header.Type.Known() {
			logrus.Warnf("Unknown event type: %s", header.Type)
		}

		if !s.config.Persist {
			continue
		}

		event := &domain.WebhookEvent{
			Channel:   s.config.Channel,
			EventType: header.Type,
			RawData:   append(domain.JSON(nil), raw...),
		}
		id, err := s.eventRepo.Persist(event)
		if err != nil {
			logrus.Errorf("Failed to store event %s: %v", header.WebhookEventID, err)
			// Continue processing other events
			continue
		}
		logrus.Infof("Stored event %s with ID: %s", header.WebhookEventID, id)
		result.EventsStored++
	}

	if result.EventsStored > 0 {
		logrus.Infof("Successfully stored %d events", result.EventsStored)
		if s.config.Notify && s.notifier != nil {
			s.notifier.Signal()
		}
	}

	return result, nil
}
