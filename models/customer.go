package models

import "time"

// Customer is the booking-side view of a registered customer. Registration
// and credentials are owned by the identity service.
type Customer struct {
	ID        string    `bson:"id" json:"id"`
	Username  string    `bson:"username" json:"username"`
	Email     string    `bson:"email" json:"email"`
	FullName  string    `bson:"full_name,omitempty" json:"fullName,omitempty"`
	FCMToken  string    `bson:"fcm_token,omitempty" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
