package models

import "time"

// LoyaltyTracker counts completed, non-discounted bookings per
// (customer, provider) pair. At most one tracker exists per pair.
type LoyaltyTracker struct {
	ID                     string    `bson:"id" json:"id"`
	CustomerID             string    `bson:"customer_id" json:"customerId"`
	ProviderID             string    `bson:"provider_id" json:"providerId"`
	CompletedBookingsCount int       `bson:"completed_bookings_count" json:"completedBookingsCount"`
	CreatedAt              time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt              time.Time `bson:"updated_at" json:"updatedAt"`
}

// LoyaltyProgress is the read model for a customer's discount progress with
// one provider.
type LoyaltyProgress struct {
	CustomerID                string  `json:"customerId"`
	ProviderID                string  `json:"providerId"`
	ProviderName              string  `json:"providerName,omitempty"`
	CompletedBookings         int     `json:"completedBookings"`
	BookingsNeededForDiscount int     `json:"bookingsNeededForDiscount"`
	EligibleForDiscount       bool    `json:"eligibleForDiscount"`
	DiscountPercentage        float64 `json:"discountPercentage"`
}
