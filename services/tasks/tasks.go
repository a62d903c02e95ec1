package tasks

import (
	"encoding/json"
	"time"

	"servimart/models"

	"github.com/hibiken/asynq"
)

// Task type names handled by the dispatch worker.
const (
	TypePushSend  = "notification:push"
	TypeEmailSend = "email:send"
)

// NewPushTask builds the queued task for delivering one notification push.
func NewPushTask(payload models.PushTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypePushSend, b)
	opts := []asynq.Option{asynq.MaxRetry(3), asynq.Timeout(30 * time.Second)}

	return task, opts, nil
}

// NewEmailTask builds the queued task for sending one booking email.
func NewEmailTask(payload models.EmailTaskPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeEmailSend, b)
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(time.Minute)}

	return task, opts, nil
}
