package customerRepo

import (
	"context"
	"errors"

	"servimart/models"
)

// ErrNotFound is returned when no customer matches the given id.
var ErrNotFound = errors.New("customer not found")

// CustomerDirectory resolves customer identities for the booking core.
// Registration and credentials live in the identity service; this side only
// needs lookups plus a create used by provisioning and tests.
type CustomerDirectory interface {
	Resolve(ctx context.Context, id string) (*models.Customer, error)
	Create(ctx context.Context, customer *models.Customer) error
}
