// File: database/repository/booking/bookingMongoQueries.go
package bookingRepo

import (
	"context"
	"fmt"

	"servimart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoBookingRepo) findAll(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

// GetByCustomer lists a customer's bookings, newest first.
func (r *MongoBookingRepo) GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.findAll(ctx, bson.M{"customer_id": customerID})
}

// GetByService lists bookings made against one catalog listing.
func (r *MongoBookingRepo) GetByService(ctx context.Context, serviceID string) ([]models.Booking, error) {
	return r.findAll(ctx, bson.M{"service_id": serviceID})
}

// GetByProvider lists bookings across all of a provider's listings.
func (r *MongoBookingRepo) GetByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return r.findAll(ctx, bson.M{"provider_id": providerID})
}

// GetCompletedByCustomerAndProvider lists completed bookings for one
// customer/provider pair; used when rebuilding loyalty counters.
func (r *MongoBookingRepo) GetCompletedByCustomerAndProvider(ctx context.Context, customerID, providerID string) ([]models.Booking, error) {
	return r.findAll(ctx, bson.M{
		"customer_id": customerID,
		"provider_id": providerID,
		"status":      models.BookingCompleted,
	})
}
