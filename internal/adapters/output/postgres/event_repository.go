package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/output"
)

// EventRepository struct - Secondary/Driven adapter for PostgreSQL
// Append-mostly: the gateway only inserts and reads; the processed columns
// are updated by the downstream processor over its own connection.
type EventRepository struct {
	dbGorm *gorm.DB
}

// Compile-time check to ensure EventRepository implements the output port
var _ output.EventRepository = (*EventRepository)(nil)

// NewEventRepository func - Creates new PostgreSQL repository
func NewEventRepository(dbGorm *gorm.DB) *EventRepository {
	logrus.Info("Migrate database ...")
	domain.MigrateDatabase(dbGorm)
	return &EventRepository{
		dbGorm: dbGorm,
	}
}

// Persist func - Inserts one webhook event and returns the assigned id
// Inserts unconditionally; redelivered events produce a second row.
func (p *EventRepository) Persist(event *domain.WebhookEvent) (*uuid.UUID, error) {
	if err := p.dbGorm.Create(event).Error; err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return event.ID, nil
}

// GetByID func - Retrieves one event by its store-assigned id
// Returns nil without error when no row matches.
func (p *EventRepository) GetByID(id uuid.UUID) (*domain.WebhookEvent, error) {
	var event domain.WebhookEvent
	err := p.dbGorm.First(&event, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return &event, nil
}

// ListRecent func - Retrieves up to limit events, newest first
func (p *EventRepository) ListRecent(limit int) ([]domain.WebhookEvent, error) {
	var events []domain.WebhookEvent
	err := p.dbGorm.Order("created_at DESC").Limit(limit).Find(&events).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}
	return events, nil
}

// AggregateStatusCounts func - Buckets rows in the trailing window by status
// completed: processed with no error, failed: processed with an error,
// pending: not yet processed. All three keys are always present.
func (p *EventRepository) AggregateStatusCounts(window time.Duration) (map[domain.ProcessingStatus]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var rows []statusCount
	err := p.dbGorm.Raw(`
		SELECT
			CASE
				WHEN processed = true AND error IS NULL THEN 'completed'
				WHEN processed = true AND error IS NOT NULL THEN 'failed'
				WHEN processed = false THEN 'pending'
			END AS status,
			COUNT(*) AS count
		FROM line_webhook_events
		WHERE created_at >= ?
		GROUP BY status
	`, time.Now().Add(-window)).Scan(&rows).Error
	if err != nil {
		logrus.Errorln(err)
		return nil, err
	}

	counts := map[domain.ProcessingStatus]int64{
		domain.ProcessingStatusCompleted: 0,
		domain.ProcessingStatusFailed:    0,
		domain.ProcessingStatusPending:   0,
	}
	for _, row := range rows {
		counts[domain.ProcessingStatus(row.Status)] = row.Count
	}
	return counts, nil
}
