package bookingRepo

import (
	"servimart/database"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "bookings"

// MongoBookingRepo implements BookingRepository backed by MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.Collection(collectionName)}
}
