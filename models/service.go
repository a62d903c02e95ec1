package models

import "time"

// ServiceStatus is the catalog approval state of a listed service.
// Only APPROVED services are bookable.
type ServiceStatus string

const (
	ServicePending  ServiceStatus = "PENDING"
	ServiceApproved ServiceStatus = "APPROVED"
	ServiceRejected ServiceStatus = "REJECTED"
)

// ProviderService is a provider's catalog listing with a price and an
// approval status. Catalog management (approval flow) is external; the
// booking core only resolves and reads listings.
type ProviderService struct {
	ID          string        `bson:"id" json:"id"`
	ProviderID  string        `bson:"provider_id" json:"providerId"`
	ServiceName string        `bson:"service_name" json:"serviceName"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	Price       float64       `bson:"price" json:"price"`
	Status      ServiceStatus `bson:"status" json:"status"`
	CreatedAt   time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time     `bson:"updated_at" json:"updatedAt"`
}
