package admin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/admin"
	"ms-booking/internal/booking"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

type MockAdminDB struct {
	bookings     map[string]*models.Booking
	shouldFailOn string
	errorMsg     string
}

func NewMockAdminDB() *MockAdminDB {
	return &MockAdminDB{bookings: make(map[string]*models.Booking)}
}

func (m *MockAdminDB) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
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

func (m *MockAdminDB) UpdateBooking(ctx context.Context, bkg *models.Booking) error {
	if m.shouldFailOn == "UpdateBooking" {
		return errors.New(m.errorMsg)
	}
	copied := *bkg
	m.bookings[bkg.ID] = &copied
	return nil
}

func (m *MockAdminDB) GetBookingsByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	var result []models.Booking
	for _, bkg := range m.bookings {
		if bkg.Status == status {
			result = append(result, *bkg)
		}
	}
	return result, nil
}

func (m *MockAdminDB) GetBookingsByDestination(ctx context.Context, destinationID string) ([]models.Booking, error) {
	var result []models.Booking
	for _, bkg := range m.bookings {
		if bkg.DestinationID == destinationID {
			result = append(result, *bkg)
		}
	}
	return result, nil
}

func (m *MockAdminDB) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	var result []models.Booking
	for _, bkg := range m.bookings {
		result = append(result, *bkg)
	}
	return result, nil
}

type MockEventPublisher struct {
	events map[string][]string
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make(map[string][]string)}
}

func (m *MockEventPublisher) PublishBookingEvent(topic, eventType string, bkg *models.Booking) error {
	m.events[topic] = append(m.events[topic], eventType)
	return nil
}

func setupAdmin() (*admin.Service, *MockAdminDB, *MockEventPublisher) {
	db := NewMockAdminDB()
	events := NewMockEventPublisher()
	svc := admin.NewService(db, events, logger.NewTestLogger(), "tours.booking.status-changed")
	svc.Now = func() time.Time { return time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC) }
	return svc, db, events
}

func TestApproveBooking(t *testing.T) {
	svc, db, events := setupAdmin()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{ID: "b1", UserID: "user1", Status: models.StatusPending}

	bkg, err := svc.Approve(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, bkg.Status)
	assert.Equal(t, []string{"booking_status_changed"}, events.events["tours.booking.status-changed"])

	// A second approve finds the booking no longer pending
	_, err = svc.Approve(ctx, "b1")
	var transitionErr *booking.IllegalTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestRejectBooking(t *testing.T) {
	svc, db, _ := setupAdmin()

	db.bookings["b1"] = &models.Booking{ID: "b1", Status: models.StatusPending}

	bkg, err := svc.Reject(context.Background(), "b1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, bkg.Status)
}

func TestApproveMissingBooking(t *testing.T) {
	svc, _, _ := setupAdmin()

	_, err := svc.Approve(context.Background(), "missing")
	var notFound *booking.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestSetStatus(t *testing.T) {
	svc, db, _ := setupAdmin()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{ID: "b1", Status: models.StatusApproved}

	bkg, err := svc.SetStatus(ctx, "b1", models.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, bkg.Status)
}

func TestSetStatusBlocksPendingShortcuts(t *testing.T) {
	svc, db, _ := setupAdmin()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{ID: "b1", Status: models.StatusPending}

	_, err := svc.SetStatus(ctx, "b1", models.StatusCancelled)
	assert.Error(t, err)

	_, err = svc.SetStatus(ctx, "b1", models.StatusCompleted)
	assert.Error(t, err)
}

func TestListBookingsFilters(t *testing.T) {
	svc, db, _ := setupAdmin()
	ctx := context.Background()

	db.bookings["b1"] = &models.Booking{ID: "b1", Status: models.StatusPending, DestinationID: "d1"}
	db.bookings["b2"] = &models.Booking{ID: "b2", Status: models.StatusApproved, DestinationID: "d2"}

	all, err := svc.ListBookings(ctx, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListBookings(ctx, models.StatusPending, "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "b1", pending[0].ID)

	byDest, err := svc.ListBookings(ctx, "", "d2")
	require.NoError(t, err)
	require.Len(t, byDest, 1)
	assert.Equal(t, "b2", byDest[0].ID)
}

func TestTransitionUpdateFailure(t *testing.T) {
	svc, db, _ := setupAdmin()

	db.bookings["b1"] = &models.Booking{ID: "b1", Status: models.StatusPending}
	db.shouldFailOn = "UpdateBooking"
	db.errorMsg = "db error"

	_, err := svc.Approve(context.Background(), "b1")
	assert.Error(t, err)
}
