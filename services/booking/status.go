package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "servimart/database/repository/booking"
	"servimart/models"

	"go.uber.org/zap"
)

// UpdateBookingStatus applies a status transition. The write is a
// compare-and-swap on the validated current status; on COMPLETED the
// loyalty accrual joins the same atomic unit, and on a loyalty-preserving
// CANCELLED so does the counter restore. Notifications and emails are
// dispatched best-effort after the write.
func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, id string, newStatus models.BookingStatus, comment string, preserveLoyalty bool) (*models.Booking, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !newStatus.IsValid() || !current.Status.CanTransitionTo(newStatus) {
		return nil, &InvalidTransitionError{From: current.Status, To: newStatus}
	}

	var updated *models.Booking
	switch newStatus {
	case models.BookingCompleted:
		err = s.transact(ctx, func(txCtx context.Context) error {
			var txErr error
			updated, txErr = s.Repo.UpdateStatusIfCurrent(txCtx, id, current.Status, newStatus, comment)
			if txErr != nil {
				return txErr
			}
			if txErr := s.Loyalty.ProcessCompletedBooking(txCtx, updated); txErr != nil {
				return &LedgerError{Err: txErr}
			}
			return nil
		})
	case models.BookingCancelled:
		restore := current.DiscountApplied && preserveLoyalty
		err = s.transact(ctx, func(txCtx context.Context) error {
			var txErr error
			updated, txErr = s.Repo.UpdateStatusIfCurrent(txCtx, id, current.Status, newStatus, comment)
			if txErr != nil {
				return txErr
			}
			if restore {
				// The discounted booking reset the counter at creation;
				// cancelling it must not erase the earned discount.
				if txErr := s.Loyalty.PreserveLoyaltyDiscount(txCtx, updated.CustomerID, updated.ProviderID); txErr != nil {
					return &LedgerError{Err: txErr}
				}
			}
			return nil
		})
	default:
		updated, err = s.Repo.UpdateStatusIfCurrent(ctx, id, current.Status, newStatus, comment)
	}
	if err != nil {
		return nil, s.translateStatusError(ctx, id, newStatus, err)
	}

	s.dispatchStatusSideEffects(ctx, updated)
	return updated, nil
}

// CancelBooking is a convenience wrapper transitioning to CANCELLED without
// preserving loyalty.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.UpdateBookingStatus(ctx, id, models.BookingCancelled, "cancelled by system", false)
}

// translateStatusError maps a lost compare-and-swap race onto the invalid
// transition taxonomy using the booking's fresh status.
func (s *DefaultBookingService) translateStatusError(ctx context.Context, id string, requested models.BookingStatus, err error) error {
	if !errors.Is(err, bookingRepo.ErrStatusChanged) {
		return err
	}
	fresh, lookupErr := s.Repo.GetByID(ctx, id)
	if lookupErr != nil {
		return err
	}
	return &InvalidTransitionError{From: fresh.Status, To: requested}
}

// dispatchStatusSideEffects fires the notifications and emails keyed on the
// booking's new status. All failures are logged and swallowed.
func (s *DefaultBookingService) dispatchStatusSideEffects(ctx context.Context, b *models.Booking) {
	handlers := map[models.BookingStatus]func(context.Context, *models.Booking, string){
		models.BookingConfirmed: s.confirmedSideEffects,
		models.BookingCompleted: s.completedSideEffects,
		models.BookingCancelled: s.cancelledSideEffects,
	}
	handler, ok := handlers[b.Status]
	if !ok {
		return
	}

	serviceName := "your service booking"
	if service, err := s.Catalog.ResolveBookableService(ctx, b.ServiceID); err == nil {
		serviceName = service.ServiceName
	} else {
		s.Logger.Warn("failed to resolve service for status side effects", zap.Error(err), zap.String("bookingId", b.ID))
	}
	handler(ctx, b, serviceName)
}

func (s *DefaultBookingService) confirmedSideEffects(ctx context.Context, b *models.Booking, serviceName string) {
	s.notify(ctx, b.CustomerID, models.RoleCustomer,
		fmt.Sprintf("Your booking for %s has been confirmed", serviceName),
		models.NotificationBookingConfirmed, "/customer/bookings")
}

func (s *DefaultBookingService) completedSideEffects(ctx context.Context, b *models.Booking, serviceName string) {
	s.notify(ctx, b.CustomerID, models.RoleCustomer,
		fmt.Sprintf("Your booking for %s has been completed", serviceName),
		models.NotificationBookingCompleted, "/customer/bookings")

	customer, err := s.Customers.Resolve(ctx, b.CustomerID)
	if err != nil {
		s.Logger.Warn("failed to resolve customer for completion email", zap.Error(err), zap.String("bookingId", b.ID))
		return
	}
	if err := s.Email.SendBookingCompletion(ctx, models.EmailTaskPayload{
		To:             customer.Email,
		Username:       customer.Username,
		BookingID:      b.ID,
		ServiceName:    serviceName,
		CompletionTime: time.Now().Format(dateTimeLayout),
	}); err != nil {
		s.Logger.Warn("failed to dispatch booking completion email", zap.Error(err), zap.String("bookingId", b.ID))
	}
}

func (s *DefaultBookingService) cancelledSideEffects(ctx context.Context, b *models.Booking, serviceName string) {
	s.notify(ctx, b.CustomerID, models.RoleCustomer,
		fmt.Sprintf("Your booking for %s has been cancelled", serviceName),
		models.NotificationBookingCancelled, "/customer/bookings")
	s.notify(ctx, b.ProviderID, models.RoleProvider,
		fmt.Sprintf("Booking for %s has been cancelled", serviceName),
		models.NotificationBookingCancelled, "/provider/bookings")
}
