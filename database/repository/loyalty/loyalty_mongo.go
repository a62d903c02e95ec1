package loyaltyRepo

import (
	"servimart/database"

	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "loyalty_trackers"

// MongoLoyaltyRepo implements LoyaltyRepository backed by MongoDB. The
// unique compound index on (customer_id, provider_id) guarantees at most
// one tracker per pair even under concurrent upserts.
type MongoLoyaltyRepo struct {
	coll *mongo.Collection
}

func NewMongoLoyaltyRepo() *MongoLoyaltyRepo {
	return &MongoLoyaltyRepo{coll: database.Collection(collectionName)}
}
