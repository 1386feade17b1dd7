// util/notification_service.go

package util

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/workbench/logging"
	"github.com/dev-mohitbeniwal/workbench/model"
)

const defaultNotificationHistory = 100

// NotificationService is the notification sink of the explorer. Messages are
// fire and forget: they are logged, kept in a bounded history for the HTTP
// layer and published on the event bus.
type NotificationService struct {
	mu          sync.Mutex
	history     []model.Notification
	navigations []model.Navigation
	limit       int
	eventBus    *EventBus
}

func NewNotificationService(eventBus *EventBus) *NotificationService {
	return &NotificationService{
		limit:    defaultNotificationHistory,
		eventBus: eventBus,
	}
}

// Notify records one notification. It never blocks on delivery.
func (n *NotificationService) Notify(ctx context.Context, panelID string, notification *model.Notification) {
	if notification == nil {
		return
	}
	shown := *notification
	shown.Panel = panelID
	if shown.ID == "" {
		shown.ID = uuid.New().String()
	}
	if shown.CreatedAt.IsZero() {
		shown.CreatedAt = time.Now().UTC()
	}

	n.mu.Lock()
	n.history = append(n.history, shown)
	if len(n.history) > n.limit {
		n.history = n.history[len(n.history)-n.limit:]
	}
	n.mu.Unlock()

	switch shown.Kind {
	case model.NotificationError:
		logger.Warn("NOTIFICATION", zap.String("panel", panelID), zap.String("message", shown.Message))
	default:
		logger.Info("NOTIFICATION", zap.String("panel", panelID), zap.String("message", shown.Message))
	}
	n.eventBus.Publish(ctx, EventNotificationShown, shown)
}

// Navigate records a one-shot request to open a resource.
func (n *NotificationService) Navigate(ctx context.Context, panelID string, resourceUUID string) {
	nav := model.Navigation{
		ID:        uuid.New().String(),
		Panel:     panelID,
		UUID:      resourceUUID,
		CreatedAt: time.Now().UTC(),
	}

	n.mu.Lock()
	n.navigations = append(n.navigations, nav)
	if len(n.navigations) > n.limit {
		n.navigations = n.navigations[len(n.navigations)-n.limit:]
	}
	n.mu.Unlock()

	logger.Info("Navigation requested", zap.String("panel", panelID), zap.String("uuid", resourceUUID))
	n.eventBus.Publish(ctx, EventNavigationRequested, nav)
}

// Recent returns up to limit notifications, newest first.
func (n *NotificationService) Recent(limit int) []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if limit <= 0 || limit > len(n.history) {
		limit = len(n.history)
	}
	out := make([]model.Notification, 0, limit)
	for i := len(n.history) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, n.history[i])
	}
	return out
}

// Navigations returns the recorded navigation requests, oldest first.
func (n *NotificationService) Navigations() []model.Navigation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]model.Navigation(nil), n.navigations...)
}
