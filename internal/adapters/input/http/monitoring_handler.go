package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/output"
	"line-webhook-gateway/pkg/validator"
)

const (
	defaultRecentEventLimit = 10
	statusWindow            = 24 * time.Hour
)

// MonitoringHandler struct - Primary/Driving adapter for the status endpoint
type MonitoringHandler struct {
	eventRepo output.EventRepository
	validator validator.Validator
}

// NewMonitoringHandler func - Creates new monitoring handler
func NewMonitoringHandler(eventRepo output.EventRepository) *MonitoringHandler {
	return &MonitoringHandler{
		eventRepo: eventRepo,
		validator: validator.New(),
	}
}

// Status func - Aggregated processing stats plus the most recent events
func (hdl *MonitoringHandler) Status(c *fiber.Ctx) error {
	var query StatusQueryRequest
	if err := c.QueryParser(&query); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid query",
		})
	}
	if err := hdl.validator.ValidateStruct(query); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	limit := defaultRecentEventLimit
	if query.Limit != nil {
		limit = *query.Limit
	}

	stats, err := hdl.eventRepo.AggregateStatusCounts(statusWindow)
	if err != nil {
		logrus.Errorf("Error getting monitoring data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve monitoring data",
		})
	}

	events, err := hdl.eventRepo.ListRecent(limit)
	if err != nil {
		logrus.Errorf("Error getting monitoring data: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve monitoring data",
		})
	}

	recent := make([]RecentEventResponse, 0, len(events))
	for _, event := range events {
		recent = append(recent, RecentEventResponse{
			ID:          event.ID,
			Channel:     event.Channel,
			Type:        event.EventType,
			Processed:   event.Processed,
			CreatedAt:   event.CreatedAt,
			ProcessedAt: event.ProcessedAt,
			Error:       event.Error,
		})
	}

	return c.Status(fiber.StatusOK).JSON(MonitoringStatusResponse{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Stats:        toStatsResponse(stats),
		RecentEvents: recent,
	})
}

func toStatsResponse(stats map[domain.ProcessingStatus]int64) StatsResponse {
	return StatsResponse{
		Completed: stats[domain.ProcessingStatusCompleted],
		Failed:    stats[domain.ProcessingStatusFailed],
		Pending:   stats[domain.ProcessingStatusPending],
	}
}
