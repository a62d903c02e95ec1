package models

import "time"

// CreateBookingRequest is the payload for creating a booking.
type CreateBookingRequest struct {
	CustomerID           string    `json:"customerId" binding:"required"`
	ServiceID            string    `json:"serviceId" binding:"required"`
	BookingDateTime      time.Time `json:"bookingDateTime" binding:"required"`
	BookingNotes         string    `json:"bookingNotes"`
	ApplyLoyaltyDiscount bool      `json:"applyLoyaltyDiscount"`
}

// UpdateBookingStatusRequest is the payload for a status transition.
type UpdateBookingStatusRequest struct {
	Status          BookingStatus `json:"status" binding:"required"`
	Comment         string        `json:"comment"`
	PreserveLoyalty bool          `json:"preserveLoyalty"`
}
