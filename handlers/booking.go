package handlers

import (
	"errors"
	"net/http"

	bookingRepo "servimart/database/repository/booking"
	catalogRepo "servimart/database/repository/catalog"
	customerRepo "servimart/database/repository/customer"
	providerRepo "servimart/database/repository/provider"
	"servimart/models"
	"servimart/services/booking"

	"github.com/gin-gonic/gin"
)

// CreateBookingHandler creates a new booking in PENDING.
func (hb *HandlerBundle) CreateBookingHandler(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	created, err := hb.Bookings.CreateBooking(c.Request.Context(), req)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetBookingHandler fetches one booking by id.
func (hb *HandlerBundle) GetBookingHandler(c *gin.Context) {
	b, err := hb.Bookings.GetBookingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetBookingsByCustomerHandler lists a customer's bookings, newest first.
func (hb *HandlerBundle) GetBookingsByCustomerHandler(c *gin.Context) {
	list, err := hb.Bookings.GetBookingsByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBookingsByServiceHandler lists bookings for one catalog listing.
func (hb *HandlerBundle) GetBookingsByServiceHandler(c *gin.Context) {
	list, err := hb.Bookings.GetBookingsByService(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetBookingsByProviderHandler lists bookings across a provider's listings.
func (hb *HandlerBundle) GetBookingsByProviderHandler(c *gin.Context) {
	list, err := hb.Bookings.GetBookingsByProvider(c.Request.Context(), c.Param("providerId"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// UpdateBookingStatusHandler applies a status transition.
func (hb *HandlerBundle) UpdateBookingStatusHandler(c *gin.Context) {
	var req models.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := hb.Bookings.UpdateBookingStatus(c.Request.Context(), c.Param("id"), req.Status, req.Comment, req.PreserveLoyalty)
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// CancelBookingHandler is the convenience cancel endpoint.
func (hb *HandlerBundle) CancelBookingHandler(c *gin.Context) {
	cancelled, err := hb.Bookings.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondBookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// respondBookingError maps the booking error taxonomy to HTTP statuses.
func respondBookingError(c *gin.Context, err error) {
	var notBookable *booking.NotBookableError
	var invalidTransition *booking.InvalidTransitionError
	var ledger *booking.LedgerError

	switch {
	case errors.Is(err, bookingRepo.ErrNotFound),
		errors.Is(err, customerRepo.ErrNotFound),
		errors.Is(err, catalogRepo.ErrNotFound),
		errors.Is(err, providerRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrPastBookingTime), errors.As(err, &notBookable):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &invalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &ledger):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
