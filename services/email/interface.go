package email

import (
	"context"

	"servimart/models"
)

// EmailService sends human-readable booking emails. Both sends are
// best-effort: callers log and discard failures.
type EmailService interface {
	SendBookingConfirmation(ctx context.Context, p models.EmailTaskPayload) error
	SendBookingCompletion(ctx context.Context, p models.EmailTaskPayload) error
}
