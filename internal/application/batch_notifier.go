package application

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"line-webhook-gateway/internal/domain"
	"line-webhook-gateway/internal/ports/output"
)

// Default notifier configuration
const (
	defaultBatchDelay  = 5 * time.Second
	defaultBatchLimit  = 50
	defaultCallTimeout = 30 * time.Second
)

// BatchNotifierConfig struct - Settings for the debounced processor notification
type BatchNotifierConfig struct {
	Channel     string
	APIKey      string
	BatchLimit  int
	Delay       time.Duration
	CallTimeout time.Duration
}

// BatchNotifier struct - Coalesces "new events" signals into one downstream call
// At most one timer is live at any instant. A signal while a timer is armed is
// absorbed; the window is never extended. The timer state is owned exclusively
// by this struct and only Signal mutates it from outside.
type BatchNotifier struct {
	client output.ProcessorClient
	config BatchNotifierConfig

	mu      sync.Mutex
	pending bool
	timer   *time.Timer
}

// Compile-time check to ensure BatchNotifier implements EventNotifier interface
var _ output.EventNotifier = (*BatchNotifier)(nil)

// NewBatchNotifier func - Creates new batch notifier
func NewBatchNotifier(client output.ProcessorClient, config BatchNotifierConfig) *BatchNotifier {
	if config.Delay <= 0 {
		config.Delay = defaultBatchDelay
	}
	if config.BatchLimit <= 0 {
		config.BatchLimit = defaultBatchLimit
	}
	if config.CallTimeout <= 0 {
		config.CallTimeout = defaultCallTimeout
	}
	return &BatchNotifier{
		client: client,
		config: config,
	}
}

// Signal func - Arms the notification timer if none is armed
// Non-blocking; the check-and-arm is atomic so concurrent requests can never
// arm two timers.
func (n *BatchNotifier) Signal() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.pending {
		return
	}
	n.pending = true
	n.timer = time.AfterFunc(n.config.Delay, n.fire)
	logrus.Infof("Scheduled processor notification in %v", n.config.Delay)
}

// fire runs in the timer goroutine. The state is cleared before the outbound
// call so a signal arriving during the call arms a fresh window.
func (n *BatchNotifier) fire() {
	n.mu.Lock()
	n.pending = false
	n.timer = nil
	n.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), n.config.CallTimeout)
	defer cancel()

	logrus.Info("Notifying processor to consume queued events")
	response, err := n.client.ProcessBatch(ctx, domain.ProcessBatchRequest{
		Channel: n.config.Channel,
		Limit:   n.config.BatchLimit,
		APIKey:  n.config.APIKey,
	})
	if err != nil {
		// No retry here; the next organic signal arms a new window
		logrus.Errorf("Failed to notify processor: %v", err)
		return
	}

	logrus.Infof("Processor handled %d events", response.Processed)
	if response.Failed > 0 {
		logrus.Warnf("Processor failed to handle %d events", response.Failed)
	}
}

// Pending func - Snapshot of whether a notification is currently scheduled
func (n *BatchNotifier) Pending() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.pending
}

// Delay func - The configured debounce window
func (n *BatchNotifier) Delay() time.Duration {
	return n.config.Delay
}

// Stop func - Cancels an armed timer, used on graceful shutdown
// A fire already in flight still completes within its call timeout.
func (n *BatchNotifier) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.pending = false
}
