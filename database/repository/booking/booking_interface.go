package bookingRepo

import (
	"context"
	"errors"

	"servimart/models"
)

// ErrNotFound is returned when no booking matches the given id.
var ErrNotFound = errors.New("booking not found")

// ErrStatusChanged is returned by UpdateStatusIfCurrent when the booking
// exists but its status no longer matches the expected one, i.e. a
// concurrent writer got there first.
var ErrStatusChanged = errors.New("booking status changed concurrently")

// BookingRepository defines the interface for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	GetByService(ctx context.Context, serviceID string) ([]models.Booking, error)
	GetByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	GetCompletedByCustomerAndProvider(ctx context.Context, customerID, providerID string) ([]models.Booking, error)

	// UpdateStatusIfCurrent performs a compare-and-swap status write: the
	// update only applies while the stored status still equals from. The
	// post-update booking is returned.
	UpdateStatusIfCurrent(ctx context.Context, id string, from, to models.BookingStatus, comment string) (*models.Booking, error)
}
