// model/notification.go
package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationInfo    NotificationKind = "INFO"
	NotificationError   NotificationKind = "ERROR"
	NotificationSuccess NotificationKind = "SUCCESS"
	NotificationWarning NotificationKind = "WARNING"
)

// Notification is a user visible message, the snackbar of the web client.
type Notification struct {
	ID           string           `json:"id"`
	Panel        string           `json:"panel,omitempty"`
	Message      string           `json:"message"`
	Kind         NotificationKind `json:"kind"`
	HideDuration time.Duration    `json:"hideDuration,omitempty"`
	CreatedAt    time.Time        `json:"createdAt"`
}

func NewNotification(kind NotificationKind, message string) *Notification {
	return &Notification{
		ID:        uuid.New().String(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now().UTC(),
	}
}

func ErrorNotification(message string) *Notification {
	return NewNotification(NotificationError, message)
}

// Navigation is a one-shot request to open a resource in the client.
type Navigation struct {
	ID        string    `json:"id"`
	Panel     string    `json:"panel"`
	UUID      string    `json:"uuid"`
	CreatedAt time.Time `json:"createdAt"`
}
