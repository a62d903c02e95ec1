package notificationRepo

import (
	"context"
	"errors"

	"servimart/models"
)

// ErrNotFound is returned when no notification matches the given id.
var ErrNotFound = errors.New("notification not found")

// NotificationRepository stores in-app notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListByRecipient(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error)
	ListUnread(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error)
	CountUnread(ctx context.Context, recipientID string, role models.RecipientRole) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, recipientID string, role models.RecipientRole) error
	MarkSent(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}
