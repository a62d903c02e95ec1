package email

import (
	"context"

	"servimart/models"
	"servimart/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueuedEmailService implements EmailService by handing sends to the task
// queue; the dispatch worker performs the actual delivery. Core operations
// never wait on the mail provider.
type QueuedEmailService struct {
	Queue  *asynq.Client
	Logger *zap.Logger
}

func (s *QueuedEmailService) enqueue(ctx context.Context, p models.EmailTaskPayload) error {
	task, opts, err := tasks.NewEmailTask(p)
	if err != nil {
		return err
	}
	if _, err := s.Queue.EnqueueContext(ctx, task, opts...); err != nil {
		s.Logger.Warn("failed to enqueue email task", zap.Error(err), zap.String("template", p.Template), zap.String("bookingId", p.BookingID))
		return err
	}
	return nil
}

func (s *QueuedEmailService) SendBookingConfirmation(ctx context.Context, p models.EmailTaskPayload) error {
	p.Template = models.EmailBookingConfirmation
	return s.enqueue(ctx, p)
}

func (s *QueuedEmailService) SendBookingCompletion(ctx context.Context, p models.EmailTaskPayload) error {
	p.Template = models.EmailBookingCompletion
	return s.enqueue(ctx, p)
}
