package loyaltyRepo

import (
	"context"

	"servimart/models"
)

// LoyaltyRepository owns the per-(customer, provider) completed-bookings
// counter. Every mutation is a single atomic read-modify-write on the
// server; callers never read a count and write it back across two calls.
type LoyaltyRepository interface {
	// GetOrCreate returns the tracker for the pair, creating it with a zero
	// count on first use. Safe under concurrent callers for the same pair.
	GetOrCreate(ctx context.Context, customerID, providerID string) (*models.LoyaltyTracker, error)

	// ListByCustomer returns every tracker the customer holds.
	ListByCustomer(ctx context.Context, customerID string) ([]models.LoyaltyTracker, error)

	// IncrementCompletedCount atomically adds 1 to the pair's counter
	// (creating the tracker if needed) and returns the post-update tracker.
	IncrementCompletedCount(ctx context.Context, customerID, providerID string) (*models.LoyaltyTracker, error)

	// SetCompletedCount atomically forces the counter to count.
	SetCompletedCount(ctx context.Context, customerID, providerID string, count int) error

	// RaiseCompletedCountTo sets the counter to floor only if it is
	// currently below floor; otherwise it is left untouched.
	RaiseCompletedCountTo(ctx context.Context, customerID, providerID string, floor int) error
}
