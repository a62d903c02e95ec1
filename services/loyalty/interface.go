package loyalty

import (
	"context"

	"servimart/models"
)

// Loyalty program constants. A customer earns a recurring 20% discount
// after four completed, full-price bookings with the same provider.
const (
	BookingsRequiredForDiscount = 4
	DiscountPercentage          = 0.20
)

// LoyaltyService owns the per-(customer, provider) completed-bookings
// counter and the discount-eligibility rule. Lookup or persistence failures
// here are hard errors: silently losing loyalty state is a correctness bug.
type LoyaltyService interface {
	ShouldApplyDiscount(ctx context.Context, customerID, providerID string) (bool, error)
	CalculateDiscountedPrice(originalPrice *float64) float64
	ProcessCompletedBooking(ctx context.Context, booking *models.Booking) error
	ResetLoyaltyCounter(ctx context.Context, customerID, providerID string) error
	PreserveLoyaltyDiscount(ctx context.Context, customerID, providerID string) error

	GetCompletedBookingsCount(ctx context.Context, customerID, providerID string) (int, error)
	GetLoyaltyProgress(ctx context.Context, customerID, providerID string) (*models.LoyaltyProgress, error)
	GetAllLoyaltyProgress(ctx context.Context, customerID string) ([]models.LoyaltyProgress, error)
	RebuildLoyaltyTracking(ctx context.Context, customerID string) (map[string]int, error)
}
