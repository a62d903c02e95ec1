package catalogRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servimart/database"
	"servimart/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCatalogRepo implements ProviderCatalog backed by MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

func NewMongoCatalogRepo() *MongoCatalogRepo {
	return &MongoCatalogRepo{coll: database.Collection("provider_services")}
}

// ResolveBookableService fetches a listing by id. The caller decides what to
// do with a non-APPROVED status.
func (r *MongoCatalogRepo) ResolveBookableService(ctx context.Context, id string) (*models.ProviderService, error) {
	var service models.ProviderService
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&service)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service listing %s: %w", id, err)
	}
	return &service, nil
}

// ListByProvider returns all of a provider's listings.
func (r *MongoCatalogRepo) ListByProvider(ctx context.Context, providerID string) ([]models.ProviderService, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"provider_id": providerID})
	if err != nil {
		return nil, fmt.Errorf("failed to query service listings: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.ProviderService
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode service listings: %w", err)
	}
	return services, nil
}

// Create inserts a new listing document.
func (r *MongoCatalogRepo) Create(ctx context.Context, service *models.ProviderService) error {
	now := time.Now().UTC()
	service.CreatedAt = now
	service.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service listing: %w", err)
	}
	return nil
}
