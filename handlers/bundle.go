package handlers

import (
	"servimart/services/booking"
	"servimart/services/loyalty"
	"servimart/services/notification"
)

// HandlerBundle groups the services the endpoint handlers depend on.
type HandlerBundle struct {
	Bookings      booking.BookingService
	Loyalty       loyalty.LoyaltyService
	Notifications notification.NotificationService
}
