package notificationRepo

import (
	"context"
	"fmt"
	"time"

	"servimart/database"
	"servimart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoNotificationRepo implements NotificationRepository backed by MongoDB.
type MongoNotificationRepo struct {
	coll *mongo.Collection
}

func NewMongoNotificationRepo() *MongoNotificationRepo {
	return &MongoNotificationRepo{coll: database.Collection("notifications")}
}

func recipientFilter(recipientID string, role models.RecipientRole) bson.M {
	return bson.M{"recipient_id": recipientID, "recipient_role": role}
}

// Create inserts a new notification document.
func (r *MongoNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *MongoNotificationRepo) list(ctx context.Context, filter bson.M) ([]models.Notification, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var notifications []models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return notifications, nil
}

// ListByRecipient returns all notifications for a recipient, newest first.
func (r *MongoNotificationRepo) ListByRecipient(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error) {
	return r.list(ctx, recipientFilter(recipientID, role))
}

// ListUnread returns unread notifications for a recipient.
func (r *MongoNotificationRepo) ListUnread(ctx context.Context, recipientID string, role models.RecipientRole) ([]models.Notification, error) {
	filter := recipientFilter(recipientID, role)
	filter["read"] = false
	return r.list(ctx, filter)
}

// CountUnread counts unread notifications for a recipient.
func (r *MongoNotificationRepo) CountUnread(ctx context.Context, recipientID string, role models.RecipientRole) (int64, error) {
	filter := recipientFilter(recipientID, role)
	filter["read"] = false
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *MongoNotificationRepo) setByID(ctx context.Context, id string, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update notification %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkRead flags one notification as read.
func (r *MongoNotificationRepo) MarkRead(ctx context.Context, id string) error {
	return r.setByID(ctx, id, bson.M{"read": true})
}

// MarkAllRead flags all of a recipient's notifications as read.
func (r *MongoNotificationRepo) MarkAllRead(ctx context.Context, recipientID string, role models.RecipientRole) error {
	filter := recipientFilter(recipientID, role)
	filter["read"] = false
	update := bson.M{"$set": bson.M{"read": true, "updated_at": time.Now().UTC()}}
	if _, err := r.coll.UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// MarkSent records a successful push delivery.
func (r *MongoNotificationRepo) MarkSent(ctx context.Context, id string) error {
	return r.setByID(ctx, id, bson.M{"sent": true})
}

// Delete removes one notification.
func (r *MongoNotificationRepo) Delete(ctx context.Context, id string) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete notification %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
