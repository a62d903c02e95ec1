package catalogRepo

import (
	"context"
	"errors"

	"servimart/models"
)

// ErrNotFound is returned when no listing matches the given id.
var ErrNotFound = errors.New("service listing not found")

// ProviderCatalog resolves a provider's listed services. Listing approval is
// external; the booking core only reads price, provider and catalog status.
type ProviderCatalog interface {
	ResolveBookableService(ctx context.Context, id string) (*models.ProviderService, error)
	ListByProvider(ctx context.Context, providerID string) ([]models.ProviderService, error)
	Create(ctx context.Context, service *models.ProviderService) error
}
