package providerRepo

import (
	"context"
	"errors"

	"servimart/models"
)

// ErrNotFound is returned when no provider matches the given id.
var ErrNotFound = errors.New("provider not found")

// ProviderDirectory resolves provider identities (display name, contact,
// push token) for the booking core.
type ProviderDirectory interface {
	Resolve(ctx context.Context, id string) (*models.Provider, error)
	Create(ctx context.Context, provider *models.Provider) error
}
