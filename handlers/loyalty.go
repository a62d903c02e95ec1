package handlers

import (
	"errors"
	"net/http"

	customerRepo "servimart/database/repository/customer"
	providerRepo "servimart/database/repository/provider"

	"github.com/gin-gonic/gin"
)

// GetLoyaltyProgressHandler returns a customer's discount progress with one
// provider.
func (hb *HandlerBundle) GetLoyaltyProgressHandler(c *gin.Context) {
	progress, err := hb.Loyalty.GetLoyaltyProgress(c.Request.Context(), c.Param("customerId"), c.Param("providerId"))
	if err != nil {
		respondLoyaltyError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetAllLoyaltyProgressHandler returns a customer's progress across every
// provider they have a tracker with.
func (hb *HandlerBundle) GetAllLoyaltyProgressHandler(c *gin.Context) {
	progress, err := hb.Loyalty.GetAllLoyaltyProgress(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondLoyaltyError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// RebuildLoyaltyTrackingHandler recomputes a customer's trackers from the
// booking history. Admin-facing repair endpoint.
func (hb *HandlerBundle) RebuildLoyaltyTrackingHandler(c *gin.Context) {
	counts, err := hb.Loyalty.RebuildLoyaltyTracking(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		respondLoyaltyError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customerId": c.Param("customerId"), "completedByProvider": counts})
}

func respondLoyaltyError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, customerRepo.ErrNotFound), errors.Is(err, providerRepo.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
