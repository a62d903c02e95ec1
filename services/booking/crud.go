package booking

import (
	"context"

	"servimart/models"
)

// GetBookingByID fetches a single booking.
func (s *DefaultBookingService) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	return s.Repo.GetByID(ctx, id)
}

// GetBookingsByCustomer lists a customer's bookings.
func (s *DefaultBookingService) GetBookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return s.Repo.GetByCustomer(ctx, customerID)
}

// GetBookingsByService lists bookings made against one catalog listing.
func (s *DefaultBookingService) GetBookingsByService(ctx context.Context, serviceID string) ([]models.Booking, error) {
	return s.Repo.GetByService(ctx, serviceID)
}

// GetBookingsByProvider lists bookings across all of a provider's listings.
func (s *DefaultBookingService) GetBookingsByProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return s.Repo.GetByProvider(ctx, providerID)
}
