package loyalty

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	bookingRepo "servimart/database/repository/booking"
	loyaltyRepo "servimart/database/repository/loyalty"
	providerRepo "servimart/database/repository/provider"
	"servimart/models"
	"servimart/services/notification"
	"servimart/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const progressCacheTTL = 30 * time.Second

// DefaultLoyaltyService is the production LoyaltyService.
type DefaultLoyaltyService struct {
	Repo        loyaltyRepo.LoyaltyRepository
	BookingRepo bookingRepo.BookingRepository
	Providers   providerRepo.ProviderDirectory
	Notifier    notification.NotificationService
	Cache       *redis.Client // nil disables progress caching
	Logger      *zap.Logger
}

// ShouldApplyDiscount reports whether the pair's counter has reached the
// discount threshold.
func (s *DefaultLoyaltyService) ShouldApplyDiscount(ctx context.Context, customerID, providerID string) (bool, error) {
	tracker, err := s.Repo.GetOrCreate(ctx, customerID, providerID)
	if err != nil {
		return false, err
	}
	return tracker.CompletedBookingsCount >= BookingsRequiredForDiscount, nil
}

// CalculateDiscountedPrice applies the loyalty discount to a price, rounded
// to 2 decimals half up. A nil price yields zero.
func (s *DefaultLoyaltyService) CalculateDiscountedPrice(originalPrice *float64) float64 {
	if originalPrice == nil {
		return 0
	}
	return utils.RoundPrice(*originalPrice * (1 - DiscountPercentage))
}

// ProcessCompletedBooking advances the pair's counter for a completed,
// full-price booking. Bookings that consumed a discount do not also earn
// progress toward the next one. The increment is a single atomic operation;
// when the post-update count lands exactly on the threshold the customer is
// told they became eligible, once per accrual cycle.
func (s *DefaultLoyaltyService) ProcessCompletedBooking(ctx context.Context, booking *models.Booking) error {
	if booking.Status != models.BookingCompleted {
		return nil
	}
	if booking.DiscountApplied {
		s.Logger.Debug("booking consumed a loyalty discount, not counting toward the next one",
			zap.String("bookingId", booking.ID))
		return nil
	}

	tracker, err := s.Repo.IncrementCompletedCount(ctx, booking.CustomerID, booking.ProviderID)
	if err != nil {
		return fmt.Errorf("failed to advance loyalty counter for booking %s: %w", booking.ID, err)
	}
	s.invalidateProgress(booking.CustomerID, booking.ProviderID)

	if tracker.CompletedBookingsCount == BookingsRequiredForDiscount {
		// Detached context: the eligibility notification must not join a
		// caller's transaction, and its failure never propagates.
		s.notifyEligible(context.Background(), booking.CustomerID, booking.ProviderID)
	}
	return nil
}

func (s *DefaultLoyaltyService) notifyEligible(ctx context.Context, customerID, providerID string) {
	providerName := "this provider"
	if provider, err := s.Providers.Resolve(ctx, providerID); err == nil {
		providerName = provider.BusinessName
	} else {
		s.Logger.Warn("failed to resolve provider for eligibility notification", zap.Error(err), zap.String("providerId", providerID))
	}

	message := fmt.Sprintf("Congratulations! You're eligible for a 20%% loyalty discount on your next booking with %s", providerName)
	if err := s.Notifier.Notify(ctx, customerID, models.RoleCustomer, message, models.NotificationLoyaltyDiscount, "/customer/bookings/new"); err != nil {
		s.Logger.Warn("failed to send eligibility notification", zap.Error(err), zap.String("customerId", customerID))
	}
}

// ResetLoyaltyCounter zeroes the pair's counter; called when a discount is
// consumed at booking creation.
func (s *DefaultLoyaltyService) ResetLoyaltyCounter(ctx context.Context, customerID, providerID string) error {
	if err := s.Repo.SetCompletedCount(ctx, customerID, providerID, 0); err != nil {
		return err
	}
	s.invalidateProgress(customerID, providerID)
	return nil
}

// PreserveLoyaltyDiscount restores an earned discount after a discounted
// booking is cancelled: the creation-time reset already zeroed the counter,
// so lift it back to the threshold. The counter is restored to exactly the
// threshold rather than replaying history.
func (s *DefaultLoyaltyService) PreserveLoyaltyDiscount(ctx context.Context, customerID, providerID string) error {
	if err := s.Repo.RaiseCompletedCountTo(ctx, customerID, providerID, BookingsRequiredForDiscount); err != nil {
		return err
	}
	s.invalidateProgress(customerID, providerID)
	return nil
}

// GetCompletedBookingsCount returns the pair's current counter value.
func (s *DefaultLoyaltyService) GetCompletedBookingsCount(ctx context.Context, customerID, providerID string) (int, error) {
	tracker, err := s.Repo.GetOrCreate(ctx, customerID, providerID)
	if err != nil {
		return 0, err
	}
	return tracker.CompletedBookingsCount, nil
}

// GetLoyaltyProgress returns the customer's progress toward a discount with
// one provider, cached briefly to keep the dashboard cheap.
func (s *DefaultLoyaltyService) GetLoyaltyProgress(ctx context.Context, customerID, providerID string) (*models.LoyaltyProgress, error) {
	if cached := s.cachedProgress(ctx, customerID, providerID); cached != nil {
		return cached, nil
	}

	tracker, err := s.Repo.GetOrCreate(ctx, customerID, providerID)
	if err != nil {
		return nil, err
	}
	progress := s.progressFromTracker(ctx, tracker)
	s.storeProgress(ctx, progress)
	return progress, nil
}

// GetAllLoyaltyProgress returns progress rows for every provider the
// customer holds a tracker with.
func (s *DefaultLoyaltyService) GetAllLoyaltyProgress(ctx context.Context, customerID string) ([]models.LoyaltyProgress, error) {
	trackers, err := s.Repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	progress := make([]models.LoyaltyProgress, 0, len(trackers))
	for i := range trackers {
		progress = append(progress, *s.progressFromTracker(ctx, &trackers[i]))
	}
	return progress, nil
}

// RebuildLoyaltyTracking is an admin repair operation: it zeroes each of the
// customer's trackers and replays their completed bookings through the
// normal accrual path. Returns the resulting count per provider.
func (s *DefaultLoyaltyService) RebuildLoyaltyTracking(ctx context.Context, customerID string) (map[string]int, error) {
	trackers, err := s.Repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	results := make(map[string]int, len(trackers))
	for _, tracker := range trackers {
		if err := s.ResetLoyaltyCounter(ctx, customerID, tracker.ProviderID); err != nil {
			return nil, err
		}

		bookings, err := s.BookingRepo.GetCompletedByCustomerAndProvider(ctx, customerID, tracker.ProviderID)
		if err != nil {
			return nil, err
		}
		for i := range bookings {
			if err := s.ProcessCompletedBooking(ctx, &bookings[i]); err != nil {
				return nil, err
			}
		}

		count, err := s.GetCompletedBookingsCount(ctx, customerID, tracker.ProviderID)
		if err != nil {
			return nil, err
		}
		results[tracker.ProviderID] = count
	}
	return results, nil
}

func (s *DefaultLoyaltyService) progressFromTracker(ctx context.Context, tracker *models.LoyaltyTracker) *models.LoyaltyProgress {
	needed := BookingsRequiredForDiscount - tracker.CompletedBookingsCount
	if needed < 0 {
		needed = 0
	}

	providerName := ""
	if provider, err := s.Providers.Resolve(ctx, tracker.ProviderID); err == nil {
		providerName = provider.BusinessName
	}

	return &models.LoyaltyProgress{
		CustomerID:                tracker.CustomerID,
		ProviderID:                tracker.ProviderID,
		ProviderName:              providerName,
		CompletedBookings:         tracker.CompletedBookingsCount,
		BookingsNeededForDiscount: needed,
		EligibleForDiscount:       tracker.CompletedBookingsCount >= BookingsRequiredForDiscount,
		DiscountPercentage:        DiscountPercentage * 100,
	}
}

func progressCacheKey(customerID, providerID string) string {
	return fmt.Sprintf("loyalty:progress:%s:%s", customerID, providerID)
}

func (s *DefaultLoyaltyService) cachedProgress(ctx context.Context, customerID, providerID string) *models.LoyaltyProgress {
	if s.Cache == nil {
		return nil
	}
	data, err := s.Cache.Get(ctx, progressCacheKey(customerID, providerID)).Result()
	if err != nil {
		return nil
	}
	var progress models.LoyaltyProgress
	if err := json.Unmarshal([]byte(data), &progress); err != nil {
		return nil
	}
	return &progress
}

func (s *DefaultLoyaltyService) storeProgress(ctx context.Context, progress *models.LoyaltyProgress) {
	if s.Cache == nil {
		return
	}
	data, err := json.Marshal(progress)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, progressCacheKey(progress.CustomerID, progress.ProviderID), data, progressCacheTTL).Err(); err != nil {
		s.Logger.Debug("failed to cache loyalty progress", zap.Error(err))
	}
}

func (s *DefaultLoyaltyService) invalidateProgress(customerID, providerID string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), progressCacheKey(customerID, providerID)).Err(); err != nil {
		s.Logger.Debug("failed to invalidate loyalty progress cache", zap.Error(err))
	}
}
