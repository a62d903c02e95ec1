package notification

import (
	"context"

	notificationRepo "servimart/database/repository/notification"
	"servimart/models"
	"servimart/services/tasks"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// DefaultNotificationService persists notifications and enqueues push
// delivery onto the task queue.
type DefaultNotificationService struct {
	Repo   notificationRepo.NotificationRepository
	Queue  *asynq.Client // nil disables push dispatch
	Logger *zap.Logger
}

// Notify stores the notification and schedules its push. A queueing failure
// is logged and swallowed; the stored notification still reaches the
// recipient through the in-app list.
func (s *DefaultNotificationService) Notify(ctx context.Context, recipientID string, role models.RecipientRole, message string, nType models.NotificationType, url string) error {
	n := &models.Notification{
		ID:            uuid.New().String(),
		RecipientID:   recipientID,
		RecipientRole: role,
		Message:       message,
		Type:          nType,
		URL:           url,
	}
	if err := s.Repo.Create(ctx, n); err != nil {
		return err
	}

	if s.Queue == nil {
		return nil
	}
	task, opts, err := tasks.NewPushTask(models.PushTaskPayload{
		NotificationID: n.ID,
		RecipientID:    recipientID,
		RecipientRole:  role,
		Message:        message,
		Type:           nType,
		URL:            url,
	})
	if err != nil {
		s.Logger.Warn("failed to build push task", zap.Error(err), zap.String("notificationId", n.ID))
		return nil
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		s.Logger.Warn("failed to enqueue push task", zap.Error(err), zap.String("notificationId", n.ID))
	}
	return nil
}

func (s *DefaultNotificationService) GetNotifications(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error) {
	return s.Repo.ListByRecipient(ctx, recipientID, role)
}

func (s *DefaultNotificationService) GetUnread(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error) {
	return s.Repo.ListUnread(ctx, recipientID, role)
}

func (s *DefaultNotificationService) CountUnread(ctx context.Context, recipientID string, role models.RecipientRole) (int64, error) {
	return s.Repo.CountUnread(ctx, recipientID, role)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}

func (s *DefaultNotificationService) MarkAllRead(ctx context.Context, recipientID string, role models.RecipientRole) error {
	return s.Repo.MarkAllRead(ctx, recipientID, role)
}

func (s *DefaultNotificationService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
