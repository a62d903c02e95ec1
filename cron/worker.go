package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"servimart/config"
	customerRepo "servimart/database/repository/customer"
	notificationRepo "servimart/database/repository/notification"
	providerRepo "servimart/database/repository/provider"
	"servimart/models"
	"servimart/services/email"
	"servimart/services/tasks"
	"servimart/utils"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitDispatchWorker runs the async dispatch worker in background. It drains
// the push and email queues filled by the booking flow.
func InitDispatchWorker(
	emailSvc email.EmailService,
	customers customerRepo.CustomerDirectory,
	providers providerRepo.ProviderDirectory,
	notifications notificationRepo.NotificationRepository,
) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePushSend, handlePushTask(customers, providers, notifications))
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(emailSvc))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[DispatchWorker] 🚀 Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[DispatchWorker] ❌ Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[DispatchWorker] ❗ Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handlePushTask(
	customers customerRepo.CustomerDirectory,
	providers providerRepo.ProviderDirectory,
	notifications notificationRepo.NotificationRepository,
) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.PushTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PushHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		if utils.FCMClient == nil {
			log.Printf("[PushHandler] ⚠️ FCM disabled, skipping push for notification %s", p.NotificationID)
			return nil
		}

		token, err := resolveFCMToken(ctx, customers, providers, p)
		if err != nil {
			log.Printf("[PushHandler] ❌ Failed to resolve recipient %s: %v", p.RecipientID, err)
			return err
		}
		if token == "" {
			log.Printf("[PushHandler] ⚠️ Recipient %s has no FCM token, skipping", p.RecipientID)
			return nil
		}

		msg := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: "ServiMart",
				Body:  p.Message,
			},
			Data: map[string]string{
				"notificationId": p.NotificationID,
				"type":           string(p.Type),
				"url":            p.URL,
			},
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			log.Printf("[PushHandler] ❌ Failed to send push for notification %s: %v", p.NotificationID, err)
			return err
		}

		if err := notifications.MarkSent(ctx, p.NotificationID); err != nil {
			log.Printf("[PushHandler] ⚠️ Push delivered but MarkSent failed for %s: %v", p.NotificationID, err)
		}
		return nil
	}
}

func resolveFCMToken(
	ctx context.Context,
	customers customerRepo.CustomerDirectory,
	providers providerRepo.ProviderDirectory,
	p models.PushTaskPayload,
) (string, error) {
	switch p.RecipientRole {
	case models.RoleCustomer:
		customer, err := customers.Resolve(ctx, p.RecipientID)
		if err != nil {
			return "", err
		}
		return customer.FCMToken, nil
	case models.RoleProvider:
		provider, err := providers.Resolve(ctx, p.RecipientID)
		if err != nil {
			return "", err
		}
		return provider.FCMToken, nil
	default:
		return "", fmt.Errorf("unknown recipient role: %s", p.RecipientRole)
	}
}

func handleEmailTask(emailSvc email.EmailService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailTaskPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailHandler] 🔴 Invalid payload: %v", err)
			return err
		}

		var err error
		switch p.Template {
		case models.EmailBookingConfirmation:
			err = emailSvc.SendBookingConfirmation(ctx, p)
		case models.EmailBookingCompletion:
			err = emailSvc.SendBookingCompletion(ctx, p)
		default:
			log.Printf("[EmailHandler] ⚠️ Unknown email template: %s", p.Template)
			return nil
		}

		if err != nil {
			log.Printf("[EmailHandler] ❌ Failed to send %s email to %s: %v", p.Template, p.To, err)
		}
		return err
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[DispatchWorker] ⚠️ Redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
