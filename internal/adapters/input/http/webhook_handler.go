package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/input"
)

const signatureHeader = "x-line-signature"

// WebhookHandler struct - Primary/Driving adapter for the LINE webhook
type WebhookHandler struct {
	service input.WebhookService
}

// NewWebhookHandler func - Creates new webhook handler
func NewWebhookHandler(service input.WebhookService) *WebhookHandler {
	return &WebhookHandler{
		service: service,
	}
}

// HandleWebhook func - Handles incoming LINE webhook requests
// The raw body bytes go straight to the service; the signature is computed
// over exactly what LINE sent. Only bad signatures (401) and unparseable
// bodies (400) are visible to LINE; everything else answers 200 so the
// platform does not redeliver.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	signature := c.Get(signatureHeader)
	body := c.Body()

	result, err := h.service.HandleCallback(body, signature)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		if errors.Is(err, domain.ErrInvalidPayload) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid payload",
			})
		}
		// The service absorbs post-authentication failures itself; this is a
		// last resort that still honours the no-retry policy.
		logrus.Errorf("Webhook processing error: %v", err)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
		})
	}

	logrus.Infof("Webhook accepted: received=%d stored=%d", result.EventsReceived, result.EventsStored)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
