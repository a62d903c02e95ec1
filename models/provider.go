package models

import "time"

// Provider is the booking-side view of a service provider.
type Provider struct {
	ID           string    `bson:"id" json:"id"`
	BusinessName string    `bson:"business_name" json:"businessName"`
	Email        string    `bson:"email" json:"email"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	FCMToken     string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}
