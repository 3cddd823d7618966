package booking_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/booking"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/promo"
)

// Mock implementations for testing

type MockBookingDB struct {
	bookings     map[string]*models.Booking
	shouldFailOn string
	errorMsg     string
}

func NewMockBookingDB() *MockBookingDB {
	return &MockBookingDB{bookings: make(map[string]*models.Booking)}
}

func (m *MockBookingDB) CreateBooking(ctx context.Context, bkg *models.Booking) error {
	if m.shouldFailOn == "CreateBooking" {
		return errors.New(m.errorMsg)
	}
	copied := *bkg
	m.bookings[bkg.ID] = &copied
	return nil
}

func (m *MockBookingDB) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	if m.shouldFailOn == "GetBookingByID" {
		return nil, errors.New(m.errorMsg)
	}
	bkg, exists := m.bookings[id]
	if !exists {
		return nil, nil
	}
	copied := *bkg
	return &copied, nil
}

func (m *MockBookingDB) UpdateBooking(ctx context.Context, bkg *models.Booking) error {
	if m.shouldFailOn == "UpdateBooking" {
		return errors.New(m.errorMsg)
	}
	if _, exists := m.bookings[bkg.ID]; !exists {
		return errors.New("booking not found")
	}
	copied := *bkg
	m.bookings[bkg.ID] = &copied
	return nil
}

func (m *MockBookingDB) DeleteBooking(ctx context.Context, id string) error {
	if m.shouldFailOn == "DeleteBooking" {
		return errors.New(m.errorMsg)
	}
	delete(m.bookings, id)
	return nil
}

func (m *MockBookingDB) GetBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	if m.shouldFailOn == "GetBookingsByUser" {
		return nil, errors.New(m.errorMsg)
	}
	var result []models.Booking
	for _, bkg := range m.bookings {
		if bkg.UserID == userID {
			result = append(result, *bkg)
		}
	}
	// Newest first, same ordering the live query returns.
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

type MockCatalog struct {
	destinations map[string]*models.Destination
}

func NewMockCatalog() *MockCatalog {
	return &MockCatalog{destinations: make(map[string]*models.Destination)}
}

func (m *MockCatalog) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	dest, exists := m.destinations[id]
	if !exists {
		return nil, nil
	}
	return dest, nil
}

type MockPromoResolver struct {
	offers map[string]*models.Offer
}

func NewMockPromoResolver() *MockPromoResolver {
	return &MockPromoResolver{offers: make(map[string]*models.Offer)}
}

func (m *MockPromoResolver) Resolve(ctx context.Context, code string, asOf time.Time) (*models.Offer, error) {
	offer, exists := m.offers[code]
	if !exists {
		return nil, promo.ErrNotApplicable
	}
	return offer, nil
}

type MockEventPublisher struct {
	events       map[string][]string
	shouldFailOn string
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make(map[string][]string)}
}

func (m *MockEventPublisher) PublishBookingEvent(topic, eventType string, bkg *models.Booking) error {
	if m.shouldFailOn == "PublishBookingEvent" {
		return errors.New("kafka down")
	}
	m.events[topic] = append(m.events[topic], eventType)
	return nil
}

func intP(v int) *int { return &v }

var testTopics = booking.Topics{Created: "tours.booking.created", Cancelled: "tours.booking.cancelled"}

func setupService() (*booking.BookingService, *MockBookingDB, *MockCatalog, *MockPromoResolver, *MockEventPublisher) {
	db := NewMockBookingDB()
	catalog := NewMockCatalog()
	resolver := NewMockPromoResolver()
	events := NewMockEventPublisher()

	catalog.destinations["dest-bali"] = &models.Destination{
		ID: "dest-bali", Name: "Bali, Indonesia", Price: 899.0, IsActive: true,
	}
	catalog.destinations["dest-inactive"] = &models.Destination{
		ID: "dest-inactive", Name: "Closed", Price: 500.0, IsActive: false,
	}

	svc := booking.NewBookingService(db, catalog, resolver, events, logger.NewTestLogger(), testTopics)
	svc.Now = func() time.Time { return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC) }
	return svc, db, catalog, resolver, events
}

func TestCreateBooking(t *testing.T) {
	svc, db, _, _, events := setupService()

	bkg, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "dest-bali",
		TravelDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Travelers:     2,
		ContactName:   "John Doe",
		ContactEmail:  "john@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, bkg.Status)
	assert.Equal(t, "user1", bkg.UserID)
	assert.Equal(t, 1798.0, bkg.TotalAmount)
	assert.Equal(t, 0.0, bkg.DiscountAmount)
	assert.NotEmpty(t, bkg.ID)

	stored, _ := db.GetBookingByID(context.Background(), bkg.ID)
	assert.NotNil(t, stored)

	assert.Equal(t, []string{"booking_created"}, events.events["tours.booking.created"])
}

func TestCreateBookingWithPromoCode(t *testing.T) {
	svc, _, _, resolver, _ := setupService()
	resolver.offers["SUMMER30"] = &models.Offer{
		ID: "offer1", PromoCode: "SUMMER30", IsActive: true, DiscountPercent: intP(30),
	}

	bkg, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "dest-bali",
		TravelDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Travelers:     2,
		ContactName:   "John Doe",
		ContactEmail:  "john@example.com",
		PromoCode:     " summer30 ",
	})
	require.NoError(t, err)

	// 899 * 2 = 1798, 30% off = 539.4
	assert.Equal(t, "SUMMER30", bkg.PromoCode)
	assert.InDelta(t, 539.4, bkg.DiscountAmount, 0.0001)
	assert.InDelta(t, 1258.6, bkg.TotalAmount, 0.0001)
}

func TestCreateBookingValidation(t *testing.T) {
	svc, _, _, _, _ := setupService()

	_, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "dest-bali",
		TravelDate:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), // in the past
		Travelers:     0,
		PromoCode:     "NOPE",
	})
	require.Error(t, err)

	var fieldErrs booking.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)

	fields := make(map[string]string)
	for _, fe := range fieldErrs {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "Travel date cannot be in the past", fields["travel_date"])
	assert.Equal(t, "Number of travelers must be at least 1", fields["travelers"])
	assert.Equal(t, "Contact name is required", fields["contact_name"])
	assert.Equal(t, "Contact email is required", fields["contact_email"])
	assert.Equal(t, "Invalid or expired promo code", fields["promo_code"])
}

func TestCreateBookingTravelDateToday(t *testing.T) {
	svc, _, _, _, _ := setupService()

	// Today is allowed, only strictly-past dates fail
	_, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "dest-bali",
		TravelDate:    time.Date(2026, 6, 15, 23, 0, 0, 0, time.UTC),
		Travelers:     1,
		ContactName:   "John Doe",
		ContactEmail:  "john@example.com",
	})
	assert.NoError(t, err)
}

func TestCreateBookingUnknownDestination(t *testing.T) {
	svc, _, _, _, _ := setupService()

	_, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "missing",
		TravelDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Travelers:     1,
		ContactName:   "John Doe",
		ContactEmail:  "john@example.com",
	})

	var notFound *booking.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreateBookingInactiveDestination(t *testing.T) {
	svc, _, _, _, _ := setupService()

	_, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "dest-inactive",
		TravelDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Travelers:     1,
		ContactName:   "John Doe",
		ContactEmail:  "john@example.com",
	})

	var notFound *booking.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestListForUser(t *testing.T) {
	svc, db, _, _, _ := setupService()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{
		ID: "b1", UserID: "user1", Status: models.StatusApproved,
		TravelDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	db.bookings["b2"] = &models.Booking{
		ID: "b2", UserID: "user1", Status: models.StatusPending,
		TravelDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	db.bookings["b3"] = &models.Booking{
		ID: "b3", UserID: "user2", Status: models.StatusPending,
		TravelDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}

	list, err := svc.ListForUser(ctx, "user1")
	require.NoError(t, err)

	assert.Len(t, list.All, 2)
	assert.Len(t, list.Past, 1)
	assert.Len(t, list.Upcoming, 1)
	assert.Equal(t, "b1", list.Past[0].ID)
	assert.Equal(t, "b2", list.Upcoming[0].ID)
}

func TestListForUserNewestFirst(t *testing.T) {
	svc, db, _, _, _ := setupService()
	ctx := context.Background()

	created := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	db.bookings["b1"] = &models.Booking{
		ID: "b1", UserID: "user1", Status: models.StatusApproved,
		TravelDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:  created.Add(1 * time.Hour),
	}
	db.bookings["b2"] = &models.Booking{
		ID: "b2", UserID: "user1", Status: models.StatusCompleted,
		TravelDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC),
		CreatedAt:  created.Add(3 * time.Hour),
	}
	db.bookings["b3"] = &models.Booking{
		ID: "b3", UserID: "user1", Status: models.StatusPending,
		TravelDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt:  created.Add(2 * time.Hour),
	}
	db.bookings["b4"] = &models.Booking{
		ID: "b4", UserID: "user1", Status: models.StatusPending,
		TravelDate: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		CreatedAt:  created.Add(4 * time.Hour),
	}

	list, err := svc.ListForUser(ctx, "user1")
	require.NoError(t, err)

	ids := func(bookings []models.Booking) []string {
		out := make([]string, 0, len(bookings))
		for _, b := range bookings {
			out = append(out, b.ID)
		}
		return out
	}

	// Newest-created first overall, and each partition keeps that order.
	assert.Equal(t, []string{"b4", "b2", "b3", "b1"}, ids(list.All))
	assert.Equal(t, []string{"b4", "b3"}, ids(list.Upcoming))
	assert.Equal(t, []string{"b2", "b1"}, ids(list.Past))
}

func TestGetBookingOwnership(t *testing.T) {
	svc, db, _, _, _ := setupService()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{ID: "b1", UserID: "user1", Status: models.StatusPending}

	bkg, err := svc.Get(ctx, "b1", "user1")
	require.NoError(t, err)
	assert.Equal(t, "b1", bkg.ID)

	// Someone else's booking
	_, err = svc.Get(ctx, "b1", "user2")
	var forbidden *booking.ForbiddenError
	assert.ErrorAs(t, err, &forbidden)

	// Missing booking
	_, err = svc.Get(ctx, "missing", "user1")
	var notFound *booking.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCancelBooking(t *testing.T) {
	svc, db, _, _, events := setupService()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{ID: "b1", UserID: "user1", Status: models.StatusPending}

	bkg, err := svc.Cancel(ctx, "b1", "user1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, bkg.Status)
	assert.Equal(t, []string{"booking_cancelled"}, events.events["tours.booking.cancelled"])

	// Cancelling again is an explicit conflict, not a no-op
	_, err = svc.Cancel(ctx, "b1", "user1")
	var transitionErr *booking.IllegalTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Contains(t, transitionErr.Error(), "already cancelled")
}

func TestCancelApprovedBookingFails(t *testing.T) {
	svc, db, _, _, _ := setupService()

	db.bookings["b1"] = &models.Booking{ID: "b1", UserID: "user1", Status: models.StatusApproved}

	_, err := svc.Cancel(context.Background(), "b1", "user1")
	var transitionErr *booking.IllegalTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestDeleteBooking(t *testing.T) {
	svc, db, _, _, _ := setupService()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{ID: "b1", UserID: "user1", Status: models.StatusCancelled}
	db.bookings["b2"] = &models.Booking{ID: "b2", UserID: "user1", Status: models.StatusPending}

	require.NoError(t, svc.Delete(ctx, "b1", "user1"))
	stored, _ := db.GetBookingByID(ctx, "b1")
	assert.Nil(t, stored)

	// Only cancelled bookings may be deleted
	err := svc.Delete(ctx, "b2", "user1")
	var transitionErr *booking.IllegalTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestUpdateTravelers(t *testing.T) {
	svc, db, _, _, _ := setupService()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{
		ID: "b1", UserID: "user1", Status: models.StatusPending,
		DestinationID: "dest-bali", Travelers: 2, DiscountAmount: 100.0, TotalAmount: 1698.0,
	}

	bkg, err := svc.UpdateTravelers(ctx, "b1", "user1", 3)
	require.NoError(t, err)

	// 899 * 3 - 100 (discount stays fixed in absolute terms)
	assert.Equal(t, 3, bkg.Travelers)
	assert.Equal(t, 2597.0, bkg.TotalAmount)
}

func TestUpdateTravelersOnlyWhilePending(t *testing.T) {
	svc, db, _, _, _ := setupService()

	db.bookings["b1"] = &models.Booking{
		ID: "b1", UserID: "user1", Status: models.StatusApproved,
		DestinationID: "dest-bali", Travelers: 2,
	}

	_, err := svc.UpdateTravelers(context.Background(), "b1", "user1", 3)
	var transitionErr *booking.IllegalTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestUpdateTravelersInvalidCount(t *testing.T) {
	svc, _, _, _, _ := setupService()

	_, err := svc.UpdateTravelers(context.Background(), "b1", "user1", 0)
	var fieldErrs booking.ValidationErrors
	assert.ErrorAs(t, err, &fieldErrs)
}

func TestCreateBookingPublishFailureDoesNotFail(t *testing.T) {
	svc, _, _, _, events := setupService()
	events.shouldFailOn = "PublishBookingEvent"

	_, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "dest-bali",
		TravelDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Travelers:     1,
		ContactName:   "John Doe",
		ContactEmail:  "john@example.com",
	})
	assert.NoError(t, err)
}

func TestCreateBookingDBFailure(t *testing.T) {
	svc, db, _, _, _ := setupService()
	db.shouldFailOn = "CreateBooking"
	db.errorMsg = "db error"

	_, err := svc.Create(context.Background(), "user1", booking.CreateBookingInput{
		DestinationID: "dest-bali",
		TravelDate:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		Travelers:     1,
		ContactName:   "John Doe",
		ContactEmail:  "john@example.com",
	})
	assert.Error(t, err)
}
