package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	bookingRepo "servimart/database/repository/booking"
	catalogRepo "servimart/database/repository/catalog"
	customerRepo "servimart/database/repository/customer"
	providerRepo "servimart/database/repository/provider"
	"servimart/models"
	"servimart/services/loyalty"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBookingRepo struct {
	bookings map[string]*models.Booking

	// forceStatusChanged makes the next CAS write fail as if a concurrent
	// writer won the race.
	forceStatusChanged bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) GetByCustomer(_ context.Context, customerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByService(_ context.Context, serviceID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ServiceID == serviceID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetByProvider(_ context.Context, providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ProviderID == providerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) GetCompletedByCustomerAndProvider(_ context.Context, customerID, providerID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID && b.ProviderID == providerID && b.Status == models.BookingCompleted {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateStatusIfCurrent(_ context.Context, id string, from, to models.BookingStatus, comment string) (*models.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	if r.forceStatusChanged {
		r.forceStatusChanged = false
		return nil, bookingRepo.ErrStatusChanged
	}
	if b.Status != from {
		return nil, bookingRepo.ErrStatusChanged
	}
	b.Status = to
	b.StatusComment = comment
	b.UpdatedAt = time.Now()
	copied := *b
	return &copied, nil
}

type fakeCustomerDir struct {
	customers map[string]*models.Customer
}

func (d *fakeCustomerDir) Resolve(_ context.Context, id string) (*models.Customer, error) {
	c, ok := d.customers[id]
	if !ok {
		return nil, customerRepo.ErrNotFound
	}
	return c, nil
}

func (d *fakeCustomerDir) Create(_ context.Context, c *models.Customer) error {
	d.customers[c.ID] = c
	return nil
}

type fakeProviderDir struct {
	providers map[string]*models.Provider
}

func (d *fakeProviderDir) Resolve(_ context.Context, id string) (*models.Provider, error) {
	p, ok := d.providers[id]
	if !ok {
		return nil, providerRepo.ErrNotFound
	}
	return p, nil
}

func (d *fakeProviderDir) Create(_ context.Context, p *models.Provider) error {
	d.providers[p.ID] = p
	return nil
}

type fakeCatalog struct {
	services map[string]*models.ProviderService
}

func (c *fakeCatalog) ResolveBookableService(_ context.Context, id string) (*models.ProviderService, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	return s, nil
}

func (c *fakeCatalog) ListByProvider(_ context.Context, providerID string) ([]models.ProviderService, error) {
	var out []models.ProviderService
	for _, s := range c.services {
		if s.ProviderID == providerID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (c *fakeCatalog) Create(_ context.Context, s *models.ProviderService) error {
	c.services[s.ID] = s
	return nil
}

type fakeLoyaltyLedger struct {
	counts map[string]int
}

func ledgerKey(customerID, providerID string) string {
	return customerID + "|" + providerID
}

func (r *fakeLoyaltyLedger) tracker(customerID, providerID string) *models.LoyaltyTracker {
	return &models.LoyaltyTracker{
		ID:                     uuid.New().String(),
		CustomerID:             customerID,
		ProviderID:             providerID,
		CompletedBookingsCount: r.counts[ledgerKey(customerID, providerID)],
	}
}

func (r *fakeLoyaltyLedger) GetOrCreate(_ context.Context, customerID, providerID string) (*models.LoyaltyTracker, error) {
	return r.tracker(customerID, providerID), nil
}

func (r *fakeLoyaltyLedger) ListByCustomer(_ context.Context, customerID string) ([]models.LoyaltyTracker, error) {
	var out []models.LoyaltyTracker
	for key := range r.counts {
		owner, providerID, ok := strings.Cut(key, "|")
		if ok && owner == customerID {
			out = append(out, *r.tracker(customerID, providerID))
		}
	}
	return out, nil
}

func (r *fakeLoyaltyLedger) IncrementCompletedCount(_ context.Context, customerID, providerID string) (*models.LoyaltyTracker, error) {
	r.counts[ledgerKey(customerID, providerID)]++
	return r.tracker(customerID, providerID), nil
}

func (r *fakeLoyaltyLedger) SetCompletedCount(_ context.Context, customerID, providerID string, count int) error {
	r.counts[ledgerKey(customerID, providerID)] = count
	return nil
}

func (r *fakeLoyaltyLedger) RaiseCompletedCountTo(_ context.Context, customerID, providerID string, floor int) error {
	if r.counts[ledgerKey(customerID, providerID)] < floor {
		r.counts[ledgerKey(customerID, providerID)] = floor
	}
	return nil
}

type recordedNotification struct {
	RecipientID string
	Role        models.RecipientRole
	Message     string
	Type        models.NotificationType
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (n *fakeNotifier) Notify(_ context.Context, recipientID string, role models.RecipientRole, message string, nType models.NotificationType, _ string) error {
	n.sent = append(n.sent, recordedNotification{recipientID, role, message, nType})
	return nil
}

func (n *fakeNotifier) GetNotifications(context.Context, string, models.RecipientRole) ([]models.Notification, error) {
	return nil, nil
}

func (n *fakeNotifier) GetUnread(context.Context, string, models.RecipientRole) ([]models.Notification, error) {
	return nil, nil
}

func (n *fakeNotifier) CountUnread(context.Context, string, models.RecipientRole) (int64, error) {
	return 0, nil
}

func (n *fakeNotifier) MarkRead(context.Context, string) error { return nil }

func (n *fakeNotifier) MarkAllRead(context.Context, string, models.RecipientRole) error {
	return nil
}
func (n *fakeNotifier) Delete(context.Context, string) error { return nil }

type fakeEmailer struct {
	confirmations []models.EmailTaskPayload
	completions   []models.EmailTaskPayload
}

func (e *fakeEmailer) SendBookingConfirmation(_ context.Context, p models.EmailTaskPayload) error {
	e.confirmations = append(e.confirmations, p)
	return nil
}

func (e *fakeEmailer) SendBookingCompletion(_ context.Context, p models.EmailTaskPayload) error {
	e.completions = append(e.completions, p)
	return nil
}

type testEnv struct {
	svc      *DefaultBookingService
	repo     *fakeBookingRepo
	ledger   *fakeLoyaltyLedger
	notifier *fakeNotifier
	emailer  *fakeEmailer
	customer *models.Customer
	provider *models.Provider
	service  *models.ProviderService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	repo := newFakeBookingRepo()
	ledger := &fakeLoyaltyLedger{counts: make(map[string]int)}
	customers := &fakeCustomerDir{customers: make(map[string]*models.Customer)}
	providers := &fakeProviderDir{providers: make(map[string]*models.Provider)}
	catalog := &fakeCatalog{services: make(map[string]*models.ProviderService)}
	notifier := &fakeNotifier{}
	emailer := &fakeEmailer{}

	loyaltySvc := &loyalty.DefaultLoyaltyService{
		Repo:        ledger,
		BookingRepo: repo,
		Providers:   providers,
		Notifier:    notifier,
		Logger:      zap.NewNop(),
	}

	customer := &models.Customer{ID: "cust-1", Username: "jamie", Email: "jamie@example.com", FullName: "Jamie Doe"}
	provider := &models.Provider{ID: "prov-1", BusinessName: "Sparkle Cleaners", Email: "hello@sparkle.example"}
	service := &models.ProviderService{
		ID:          "svc-1",
		ProviderID:  "prov-1",
		ServiceName: "Deep Cleaning",
		Price:       50.00,
		Status:      models.ServiceApproved,
	}
	require.NoError(t, customers.Create(ctx, customer))
	require.NoError(t, providers.Create(ctx, provider))
	require.NoError(t, catalog.Create(ctx, service))

	svc := &DefaultBookingService{
		Repo:      repo,
		Customers: customers,
		Providers: providers,
		Catalog:   catalog,
		Loyalty:   loyaltySvc,
		Notifier:  notifier,
		Email:     emailer,
		Logger:    zap.NewNop(),
	}

	return &testEnv{
		svc:      svc,
		repo:     repo,
		ledger:   ledger,
		notifier: notifier,
		emailer:  emailer,
		customer: customer,
		provider: provider,
		service:  service,
	}
}

func (e *testEnv) createRequest() models.CreateBookingRequest {
	return models.CreateBookingRequest{
		CustomerID:      e.customer.ID,
		ServiceID:       e.service.ID,
		BookingDateTime: time.Now().Add(48 * time.Hour),
	}
}

func (e *testEnv) count(t *testing.T) int {
	t.Helper()
	count, err := e.svc.Loyalty.GetCompletedBookingsCount(context.Background(), e.customer.ID, e.provider.ID)
	require.NoError(t, err)
	return count
}

func TestCreateBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, env.createRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.BookingPending, created.Status)
	assert.Equal(t, env.provider.ID, created.ProviderID)
	assert.False(t, created.DiscountApplied)
	assert.InDelta(t, 50.00, created.OriginalPrice, 1e-9)
	assert.InDelta(t, 50.00, created.DiscountedPrice, 1e-9)

	stored, err := env.repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, stored.Status)

	// Both sides hear about the new booking.
	require.Len(t, env.notifier.sent, 2)
	assert.Equal(t, models.RoleCustomer, env.notifier.sent[0].Role)
	assert.Equal(t, models.RoleProvider, env.notifier.sent[1].Role)

	require.Len(t, env.emailer.confirmations, 1)
	conf := env.emailer.confirmations[0]
	assert.Equal(t, env.customer.Email, conf.To)
	assert.Equal(t, "Deep Cleaning", conf.ServiceName)
	assert.Equal(t, "50.00", conf.FormattedPrice)
	assert.Equal(t, "Sparkle Cleaners", conf.ProviderName)
}

func TestCreateBookingRejectsPastTime(t *testing.T) {
	env := newTestEnv(t)

	req := env.createRequest()
	req.BookingDateTime = time.Now().Add(-time.Hour)

	_, err := env.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastBookingTime)
	assert.Empty(t, env.notifier.sent)
}

func TestCreateBookingUnknownCustomer(t *testing.T) {
	env := newTestEnv(t)

	req := env.createRequest()
	req.CustomerID = "missing"

	_, err := env.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, customerRepo.ErrNotFound)
}

func TestCreateBookingUnknownService(t *testing.T) {
	env := newTestEnv(t)

	req := env.createRequest()
	req.ServiceID = "missing"

	_, err := env.svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, catalogRepo.ErrNotFound)
}

func TestCreateBookingServiceNotApproved(t *testing.T) {
	env := newTestEnv(t)
	env.service.Status = models.ServicePending

	_, err := env.svc.CreateBooking(context.Background(), env.createRequest())

	var notBookable *NotBookableError
	require.ErrorAs(t, err, &notBookable)
	assert.Equal(t, env.service.ID, notBookable.ServiceID)
}

func TestCreateBookingAppliesDiscountAndResetsCounter(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.ledger.SetCompletedCount(ctx, env.customer.ID, env.provider.ID, 4))

	req := env.createRequest()
	req.ApplyLoyaltyDiscount = true

	created, err := env.svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	assert.True(t, created.DiscountApplied)
	require.NotNil(t, created.DiscountPercentage)
	assert.InDelta(t, 0.20, *created.DiscountPercentage, 1e-9)
	assert.InDelta(t, 50.00, created.OriginalPrice, 1e-9)
	assert.InDelta(t, 40.00, created.DiscountedPrice, 1e-9)

	// Consuming the discount starts a fresh accrual cycle.
	assert.Zero(t, env.count(t))

	require.Len(t, env.emailer.confirmations, 1)
	assert.Contains(t, env.emailer.confirmations[0].FormattedPrice, "40.00")
	assert.Contains(t, env.emailer.confirmations[0].FormattedPrice, "loyalty discount")
}

func TestCreateBookingEligibleWithoutOptIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.ledger.SetCompletedCount(ctx, env.customer.ID, env.provider.ID, 4))

	created, err := env.svc.CreateBooking(ctx, env.createRequest())
	require.NoError(t, err)

	assert.False(t, created.DiscountApplied)
	assert.InDelta(t, 50.00, created.DiscountedPrice, 1e-9)
	// The earned eligibility is kept for a later booking.
	assert.Equal(t, 4, env.count(t))
}

func TestUpdateBookingStatusLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, env.createRequest())
	require.NoError(t, err)

	confirmed, err := env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingConfirmed, "see you then", false)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, confirmed.Status)
	assert.Equal(t, "see you then", confirmed.StatusComment)

	completed, err := env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCompleted, "", false)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCompleted, completed.Status)

	// Completion of a full-price booking advances the loyalty counter.
	assert.Equal(t, 1, env.count(t))

	require.Len(t, env.emailer.completions, 1)
	assert.Equal(t, env.customer.Email, env.emailer.completions[0].To)
	assert.Equal(t, "Deep Cleaning", env.emailer.completions[0].ServiceName)
}

func TestUpdateBookingStatusInvalidTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, env.createRequest())
	require.NoError(t, err)

	// A PENDING booking cannot jump straight to COMPLETED.
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCompleted, "", false)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.BookingPending, invalid.From)
	assert.Equal(t, models.BookingCompleted, invalid.To)

	// Unknown target status.
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingStatus("DONE"), "", false)
	require.ErrorAs(t, err, &invalid)

	// Terminal statuses accept no further changes.
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingRejected, "fully booked", false)
	require.NoError(t, err)
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCancelled, "", false)
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, models.BookingRejected, invalid.From)
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.UpdateBookingStatus(context.Background(), "missing", models.BookingConfirmed, "", false)
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)
}

func TestDoubleCompletionCountsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, env.createRequest())
	require.NoError(t, err)
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingConfirmed, "", false)
	require.NoError(t, err)
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCompleted, "", false)
	require.NoError(t, err)

	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCompleted, "", false)
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)

	assert.Equal(t, 1, env.count(t))
}

func TestCompletedDiscountedBookingDoesNotAccrue(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.ledger.SetCompletedCount(ctx, env.customer.ID, env.provider.ID, 4))

	req := env.createRequest()
	req.ApplyLoyaltyDiscount = true
	created, err := env.svc.CreateBooking(ctx, req)
	require.NoError(t, err)
	require.Zero(t, env.count(t))

	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingConfirmed, "", false)
	require.NoError(t, err)
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCompleted, "", false)
	require.NoError(t, err)

	// The discounted booking itself never counts toward the next discount.
	assert.Zero(t, env.count(t))
}

func TestCancelDiscountedBookingPreservesLoyalty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.ledger.SetCompletedCount(ctx, env.customer.ID, env.provider.ID, 4))

	req := env.createRequest()
	req.ApplyLoyaltyDiscount = true
	created, err := env.svc.CreateBooking(ctx, req)
	require.NoError(t, err)
	require.Zero(t, env.count(t))

	cancelled, err := env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCancelled, "provider unavailable", true)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)

	// The unused discount is restored.
	assert.Equal(t, 4, env.count(t))
}

func TestCancelDiscountedBookingWithoutPreserve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.ledger.SetCompletedCount(ctx, env.customer.ID, env.provider.ID, 4))

	req := env.createRequest()
	req.ApplyLoyaltyDiscount = true
	created, err := env.svc.CreateBooking(ctx, req)
	require.NoError(t, err)

	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCancelled, "changed my mind", false)
	require.NoError(t, err)

	assert.Zero(t, env.count(t))
}

func TestCancelBooking(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, env.createRequest())
	require.NoError(t, err)

	cancelled, err := env.svc.CancelBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, cancelled.Status)
	assert.Equal(t, "cancelled by system", cancelled.StatusComment)
}

func TestLostStatusRaceMapsToInvalidTransition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.svc.CreateBooking(ctx, env.createRequest())
	require.NoError(t, err)

	env.repo.forceStatusChanged = true
	_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingConfirmed, "", false)

	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.False(t, errors.Is(err, bookingRepo.ErrStatusChanged))
}

func TestFourCompletionsEarnEligibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < loyalty.BookingsRequiredForDiscount; i++ {
		created, err := env.svc.CreateBooking(ctx, env.createRequest())
		require.NoError(t, err)
		_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingConfirmed, "", false)
		require.NoError(t, err)
		_, err = env.svc.UpdateBookingStatus(ctx, created.ID, models.BookingCompleted, "", false)
		require.NoError(t, err)
	}

	assert.Equal(t, 4, env.count(t))

	eligible, err := env.svc.Loyalty.ShouldApplyDiscount(ctx, env.customer.ID, env.provider.ID)
	require.NoError(t, err)
	assert.True(t, eligible)

	var discountNotices int
	for _, n := range env.notifier.sent {
		if n.Type == models.NotificationLoyaltyDiscount {
			discountNotices++
		}
	}
	assert.Equal(t, 1, discountNotices)
}
