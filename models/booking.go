package models

import "time"

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"   // Waiting for provider approval
	BookingConfirmed BookingStatus = "CONFIRMED" // Confirmed by the provider
	BookingCompleted BookingStatus = "COMPLETED" // Service has been carried out
	BookingCancelled BookingStatus = "CANCELLED" // Cancelled by either party
	BookingRejected  BookingStatus = "REJECTED"  // Rejected by the provider
)

// validTransitions defines the state machine for booking status changes.
// COMPLETED, CANCELLED and REJECTED are terminal.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingRejected, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
	BookingCompleted: {},
	BookingCancelled: {},
	BookingRejected:  {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// Booking represents a customer's reservation of a provider's listed service.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	CustomerID      string        `bson:"customer_id" json:"customerId"`
	ServiceID       string        `bson:"service_id" json:"serviceId"`
	ProviderID      string        `bson:"provider_id" json:"providerId"` // Denormalized from the service listing
	BookingDateTime time.Time     `bson:"booking_date_time" json:"bookingDateTime"`
	BookingNotes    string        `bson:"booking_notes,omitempty" json:"bookingNotes,omitempty"`
	Status          BookingStatus `bson:"status" json:"status"`
	StatusComment   string        `bson:"status_comment,omitempty" json:"statusComment,omitempty"`

	// Price snapshot frozen at creation time. When DiscountApplied is true,
	// DiscountedPrice == OriginalPrice * (1 - *DiscountPercentage), rounded
	// to 2 decimals half up.
	DiscountApplied    bool     `bson:"discount_applied" json:"discountApplied"`
	DiscountPercentage *float64 `bson:"discount_percentage,omitempty" json:"discountPercentage,omitempty"`
	OriginalPrice      float64  `bson:"original_price" json:"originalPrice"`
	DiscountedPrice    float64  `bson:"discounted_price" json:"discountedPrice"`

	// Set once a post-completion review exists; irrelevant to lifecycle logic.
	ReviewID string `bson:"review_id,omitempty" json:"reviewId,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
