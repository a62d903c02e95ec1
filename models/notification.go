package models

import "time"

// NotificationType categorizes a notification for the client UI.
type NotificationType string

const (
	NotificationBookingCreated   NotificationType = "BOOKING_CREATED"
	NotificationBookingConfirmed NotificationType = "BOOKING_CONFIRMED"
	NotificationBookingCompleted NotificationType = "BOOKING_COMPLETED"
	NotificationBookingCancelled NotificationType = "BOOKING_CANCELLED"
	NotificationLoyaltyDiscount  NotificationType = "LOYALTY_DISCOUNT"
)

// RecipientRole identifies which side of the marketplace a notification
// targets.
type RecipientRole string

const (
	RoleCustomer RecipientRole = "CUSTOMER"
	RoleProvider RecipientRole = "SERVICE_PROVIDER"
)

// Notification is a persisted in-app notification. Push delivery happens
// asynchronously and best-effort.
type Notification struct {
	ID            string           `bson:"id" json:"id"`
	RecipientID   string           `bson:"recipient_id" json:"recipientId"`
	RecipientRole RecipientRole    `bson:"recipient_role" json:"recipientRole"`
	Message       string           `bson:"message" json:"message"`
	Type          NotificationType `bson:"type" json:"type"`
	URL           string           `bson:"url,omitempty" json:"url,omitempty"`
	Read          bool             `bson:"read" json:"read"`
	Sent          bool             `bson:"sent" json:"sent"`
	CreatedAt     time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time        `bson:"updated_at" json:"updatedAt"`
}
