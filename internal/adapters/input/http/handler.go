package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"line-webhook-gateway/internal/application"
)

// HTTPHandler struct - Primary/Driving adapter for HTTP health checks
type HTTPHandler struct {
	db       *gorm.DB
	notifier *application.BatchNotifier
	env      EnvStatus
}

// New func - Creates new HTTP handler
// notifier may be nil when downstream notification is disabled. env carries
// presence booleans only; the secret values themselves stay out of reach.
func New(db *gorm.DB, notifier *application.BatchNotifier, env EnvStatus) *HTTPHandler {
	return &HTTPHandler{
		db:       db,
		notifier: notifier,
		env:      env,
	}
}

// HealthCheck func - Reports service and storage connectivity status
// Always answers 200; a broken database shows up as database=error.
func (hdl *HTTPHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "unknown"
	if hdl.db != nil {
		sqlDB, err := hdl.db.DB()
		if err != nil {
			logrus.Errorln(err)
			dbStatus = "error"
		} else if err := sqlDB.Ping(); err != nil {
			logrus.Errorln(err)
			dbStatus = "error"
		} else {
			dbStatus = "connected"
		}
	}

	response := HealthResponse{
		Status:    "ok",
		Service:   "LINE Webhook Gateway",
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Env:       hdl.env,
	}
	if hdl.notifier != nil {
		response.Notification = &NotificationStatus{
			PendingNotification: hdl.notifier.Pending(),
			BatchDelay:          hdl.notifier.Delay().String(),
		}
	}

	return c.Status(fiber.StatusOK).JSON(response)
}
