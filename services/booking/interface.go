package booking

import (
	"context"

	bookingRepo "servimart/database/repository/booking"
	catalogRepo "servimart/database/repository/catalog"
	customerRepo "servimart/database/repository/customer"
	providerRepo "servimart/database/repository/provider"
	"servimart/database"
	"servimart/models"
	"servimart/services/email"
	"servimart/services/loyalty"
	"servimart/services/notification"

	"go.uber.org/zap"
)

// BookingService owns a booking's status machine and its price/discount
// snapshot, delegating loyalty-state changes to the LoyaltyService.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error)
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	GetBookingsByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	GetBookingsByService(ctx context.Context, serviceID string) ([]models.Booking, error)
	GetBookingsByProvider(ctx context.Context, providerID string) ([]models.Booking, error)
	UpdateBookingStatus(ctx context.Context, id string, newStatus models.BookingStatus, comment string, preserveLoyalty bool) (*models.Booking, error)
	CancelBooking(ctx context.Context, id string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Customers customerRepo.CustomerDirectory
	Providers providerRepo.ProviderDirectory
	Catalog   catalogRepo.ProviderCatalog
	Loyalty   loyalty.LoyaltyService
	Notifier  notification.NotificationService
	Email     email.EmailService
	Tx        database.TxRunner
	Logger    *zap.Logger
}

// transact runs fn atomically; without an injected runner fn runs directly.
func (s *DefaultBookingService) transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.Tx == nil {
		return fn(ctx)
	}
	return s.Tx(ctx, fn)
}
