package booking

import (
	"errors"
	"fmt"

	"servimart/models"
)

// ErrPastBookingTime is returned when the requested slot is not strictly in
// the future.
var ErrPastBookingTime = errors.New("booking date and time must be in the future")

// NotBookableError means the target service's catalog status is not
// APPROVED at booking-creation time.
type NotBookableError struct {
	ServiceID string
	Status    models.ServiceStatus
}

func (e *NotBookableError) Error() string {
	return fmt.Sprintf("cannot book service %s: catalog status is %s", e.ServiceID, e.Status)
}

// InvalidTransitionError means the requested status change is not permitted
// from the booking's current status.
type InvalidTransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}

// LedgerError wraps a loyalty-ledger failure. It is never swallowed: the
// enclosing booking mutation is treated as failed, because corrupting
// loyalty state is worse than a failed status update.
type LedgerError struct {
	Err error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("loyalty ledger failure: %v", e.Err)
}

func (e *LedgerError) Unwrap() error {
	return e.Err
}
