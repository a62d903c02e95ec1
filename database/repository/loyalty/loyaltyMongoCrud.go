// File: database/repository/loyalty/loyaltyMongoCrud.go
package loyaltyRepo

import (
	"context"
	"fmt"
	"time"

	"servimart/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func pairFilter(customerID, providerID string) bson.M {
	return bson.M{"customer_id": customerID, "provider_id": providerID}
}

// GetOrCreate returns the tracker for the pair, lazily inserting a zero
// counter. The upsert plus the unique pair index make concurrent first
// calls converge on a single document.
func (r *MongoLoyaltyRepo) GetOrCreate(ctx context.Context, customerID, providerID string) (*models.LoyaltyTracker, error) {
	now := time.Now().UTC()
	update := bson.M{"$setOnInsert": bson.M{
		"id":                       uuid.New().String(),
		"customer_id":              customerID,
		"provider_id":              providerID,
		"completed_bookings_count": 0,
		"created_at":               now,
		"updated_at":               now,
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var tracker models.LoyaltyTracker
	if err := r.coll.FindOneAndUpdate(ctx, pairFilter(customerID, providerID), update, opts).Decode(&tracker); err != nil {
		return nil, fmt.Errorf("failed to get or create loyalty tracker for customer %s and provider %s: %w", customerID, providerID, err)
	}
	return &tracker, nil
}

// ListByCustomer returns all trackers held by a customer.
func (r *MongoLoyaltyRepo) ListByCustomer(ctx context.Context, customerID string) ([]models.LoyaltyTracker, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"customer_id": customerID})
	if err != nil {
		return nil, fmt.Errorf("failed to query loyalty trackers: %w", err)
	}
	defer cursor.Close(ctx)

	var trackers []models.LoyaltyTracker
	if err := cursor.All(ctx, &trackers); err != nil {
		return nil, fmt.Errorf("failed to decode loyalty trackers: %w", err)
	}
	return trackers, nil
}

// IncrementCompletedCount adds 1 to the counter in a single server-side
// operation and returns the post-image, so callers can test the new value
// without a second read racing other writers.
func (r *MongoLoyaltyRepo) IncrementCompletedCount(ctx context.Context, customerID, providerID string) (*models.LoyaltyTracker, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$inc": bson.M{"completed_bookings_count": 1},
		"$set": bson.M{"updated_at": now},
		"$setOnInsert": bson.M{
			"id":          uuid.New().String(),
			"customer_id": customerID,
			"provider_id": providerID,
			"created_at":  now,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var tracker models.LoyaltyTracker
	if err := r.coll.FindOneAndUpdate(ctx, pairFilter(customerID, providerID), update, opts).Decode(&tracker); err != nil {
		return nil, fmt.Errorf("failed to increment loyalty counter for customer %s and provider %s: %w", customerID, providerID, err)
	}
	return &tracker, nil
}

// SetCompletedCount forces the counter to an absolute value.
func (r *MongoLoyaltyRepo) SetCompletedCount(ctx context.Context, customerID, providerID string, count int) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{"completed_bookings_count": count, "updated_at": now},
		"$setOnInsert": bson.M{
			"id":          uuid.New().String(),
			"customer_id": customerID,
			"provider_id": providerID,
			"created_at":  now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := r.coll.UpdateOne(ctx, pairFilter(customerID, providerID), update, opts); err != nil {
		return fmt.Errorf("failed to set loyalty counter for customer %s and provider %s: %w", customerID, providerID, err)
	}
	return nil
}

// RaiseCompletedCountTo lifts the counter to floor when it is below floor.
// The threshold condition lives in the filter, so the check and the write
// are one atomic operation.
func (r *MongoLoyaltyRepo) RaiseCompletedCountTo(ctx context.Context, customerID, providerID string, floor int) error {
	if _, err := r.GetOrCreate(ctx, customerID, providerID); err != nil {
		return err
	}

	filter := pairFilter(customerID, providerID)
	filter["completed_bookings_count"] = bson.M{"$lt": floor}
	update := bson.M{"$set": bson.M{
		"completed_bookings_count": floor,
		"updated_at":               time.Now().UTC(),
	}}
	if _, err := r.coll.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to raise loyalty counter for customer %s and provider %s: %w", customerID, providerID, err)
	}
	return nil
}
