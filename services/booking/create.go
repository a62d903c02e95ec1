package booking

import (
	"context"
	"fmt"
	"time"

	"servimart/models"
	"servimart/services/loyalty"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateTimeLayout = "January 02, 2006 15:04"

// CreateBooking validates the request, snapshots the price (with the
// loyalty discount when the customer is eligible and opted in) and persists
// the booking in PENDING. Notifications and the confirmation email are
// dispatched best-effort after the write.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.Booking, error) {
	if !req.BookingDateTime.After(time.Now()) {
		return nil, ErrPastBookingTime
	}

	customer, err := s.Customers.Resolve(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	service, err := s.Catalog.ResolveBookableService(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if service.Status != models.ServiceApproved {
		return nil, &NotBookableError{ServiceID: service.ID, Status: service.Status}
	}
	provider, err := s.Providers.Resolve(ctx, service.ProviderID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.Loyalty.ShouldApplyDiscount(ctx, customer.ID, provider.ID)
	if err != nil {
		return nil, &LedgerError{Err: err}
	}
	// The discount is applied only when the customer is eligible AND
	// explicitly asked for it.
	applyDiscount := eligible && req.ApplyLoyaltyDiscount

	booking := &models.Booking{
		ID:              uuid.New().String(),
		CustomerID:      customer.ID,
		ServiceID:       service.ID,
		ProviderID:      provider.ID,
		BookingDateTime: req.BookingDateTime.UTC(),
		BookingNotes:    req.BookingNotes,
		Status:          models.BookingPending,
	}
	if applyDiscount {
		pct := float64(loyalty.DiscountPercentage)
		booking.DiscountApplied = true
		booking.DiscountPercentage = &pct
		booking.OriginalPrice = service.Price
		booking.DiscountedPrice = s.Loyalty.CalculateDiscountedPrice(&service.Price)
	} else {
		booking.OriginalPrice = service.Price
		booking.DiscountedPrice = service.Price
	}

	if applyDiscount {
		// Consuming the discount resets the counter; the booking insert and
		// the reset commit or fail together.
		err = s.transact(ctx, func(txCtx context.Context) error {
			if err := s.Repo.Create(txCtx, booking); err != nil {
				return err
			}
			if err := s.Loyalty.ResetLoyaltyCounter(txCtx, customer.ID, provider.ID); err != nil {
				return &LedgerError{Err: err}
			}
			return nil
		})
	} else {
		err = s.Repo.Create(ctx, booking)
	}
	if err != nil {
		return nil, err
	}

	s.dispatchCreationSideEffects(ctx, booking, customer, service, provider)
	return booking, nil
}

func (s *DefaultBookingService) dispatchCreationSideEffects(ctx context.Context, b *models.Booking, customer *models.Customer, service *models.ProviderService, provider *models.Provider) {
	s.notify(ctx, customer.ID, models.RoleCustomer,
		fmt.Sprintf("Your booking for %s has been created", service.ServiceName),
		models.NotificationBookingCreated, "/customer/bookings")
	s.notify(ctx, provider.ID, models.RoleProvider,
		fmt.Sprintf("New booking request for %s", service.ServiceName),
		models.NotificationBookingCreated, "/provider/bookings")

	formattedPrice := fmt.Sprintf("%.2f", b.OriginalPrice)
	if b.DiscountApplied {
		formattedPrice = fmt.Sprintf("%.2f (with 20%% loyalty discount)", b.DiscountedPrice)

		s.notify(ctx, customer.ID, models.RoleCustomer,
			fmt.Sprintf("20%% loyalty discount applied to your booking for %s. You saved $%.2f",
				service.ServiceName, b.OriginalPrice-b.DiscountedPrice),
			models.NotificationLoyaltyDiscount, "/customer/bookings")
		s.notify(ctx, provider.ID, models.RoleProvider,
			fmt.Sprintf("New booking with 20%% loyalty discount from %s for your service %s",
				customerDisplayName(customer), service.ServiceName),
			models.NotificationBookingCreated, "/provider/bookings")
	}

	if err := s.Email.SendBookingConfirmation(ctx, models.EmailTaskPayload{
		To:                customer.Email,
		Username:          customer.Username,
		BookingID:         b.ID,
		ServiceName:       service.ServiceName,
		FormattedDateTime: b.BookingDateTime.Format(dateTimeLayout),
		FormattedPrice:    formattedPrice,
		ProviderName:      provider.BusinessName,
	}); err != nil {
		s.Logger.Warn("failed to dispatch booking confirmation email", zap.Error(err), zap.String("bookingId", b.ID))
	}
}

// notify forwards to the gateway and logs failures; notification problems
// never fail a booking operation.
func (s *DefaultBookingService) notify(ctx context.Context, recipientID string, role models.RecipientRole, message string, nType models.NotificationType, url string) {
	if err := s.Notifier.Notify(ctx, recipientID, role, message, nType, url); err != nil {
		s.Logger.Warn("failed to dispatch notification",
			zap.Error(err),
			zap.String("recipientId", recipientID),
			zap.String("type", string(nType)))
	}
}

func customerDisplayName(c *models.Customer) string {
	if c.FullName != "" {
		return c.FullName
	}
	return c.Username
}
