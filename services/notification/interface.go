package notification

import (
	"context"

	"servimart/models"
)

// NotificationService is the gateway the booking core emits events through.
// Notify persists the notification and queues push delivery; delivery is
// best-effort and never blocks or fails the triggering operation.
type NotificationService interface {
	Notify(ctx context.Context, recipientID string, role models.RecipientRole, message string, nType models.NotificationType, url string) error

	GetNotifications(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error)
	GetUnread(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID string, role models.RecipientRole) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string, role models.RecipientRole) error
	Delete(ctx context.Context, id string) error
}
