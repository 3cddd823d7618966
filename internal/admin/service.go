package admin

import (
	"context"
	"fmt"
	"time"

	"ms-booking/internal/booking"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

type DBLayer interface {
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingsByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error)
	GetBookingsByDestination(ctx context.Context, destinationID string) ([]models.Booking, error)
	GetAllBookings(ctx context.Context) ([]models.Booking, error)
}

type EventPublisher interface {
	PublishBookingEvent(topic, eventType string, booking *models.Booking) error
}

// Service carries the operator-facing booking actions. Status updates read
// the current record, validate the transition and write back; the
// check-then-set window is accepted rather than guarded (two concurrent
// approvals can both pass the read).
type Service struct {
	DB                 DBLayer
	Events             EventPublisher
	Logger             *logger.Logger
	StatusChangedTopic string

	Now func() time.Time
}

func NewService(db DBLayer, events EventPublisher, log *logger.Logger, statusChangedTopic string) *Service {
	return &Service{
		DB:                 db,
		Events:             events,
		Logger:             log,
		StatusChangedTopic: statusChangedTopic,
		Now:                time.Now,
	}
}

// ListBookings returns bookings filtered by status or destination; both
// filters empty means every booking. Newest first.
func (s *Service) ListBookings(ctx context.Context, status models.BookingStatus, destinationID string) ([]models.Booking, error) {
	switch {
	case status != "":
		return s.DB.GetBookingsByStatus(ctx, status)
	case destinationID != "":
		return s.DB.GetBookingsByDestination(ctx, destinationID)
	default:
		return s.DB.GetAllBookings(ctx)
	}
}

// Approve moves a PENDING booking to APPROVED.
func (s *Service) Approve(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, booking.Approve)
}

// Reject moves a PENDING booking to REJECTED.
func (s *Service) Reject(ctx context.Context, bookingID string) (*models.Booking, error) {
	return s.transition(ctx, bookingID, booking.Reject)
}

// SetStatus applies the generic operator set-status path.
func (s *Service) SetStatus(ctx context.Context, bookingID string, target models.BookingStatus) (*models.Booking, error) {
	return s.transition(ctx, bookingID, func(current models.BookingStatus) (models.BookingStatus, error) {
		return booking.SetByOperator(current, target)
	})
}

func (s *Service) transition(ctx context.Context, bookingID string, guard func(models.BookingStatus) (models.BookingStatus, error)) (*models.Booking, error) {
	bkg, err := s.DB.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if bkg == nil {
		return nil, &booking.NotFoundError{Resource: "booking", ID: bookingID}
	}

	next, err := guard(bkg.Status)
	if err != nil {
		return nil, err
	}

	previous := bkg.Status
	bkg.Status = next
	bkg.UpdatedAt = s.Now()
	if err := s.DB.UpdateBooking(ctx, bkg); err != nil {
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}

	s.Logger.LogBooking("STATUS", bkg.ID, fmt.Sprintf("%s -> %s", previous, next))
	if s.Events != nil && s.StatusChangedTopic != "" {
		if err := s.Events.PublishBookingEvent(s.StatusChangedTopic, "booking_status_changed", bkg); err != nil {
			s.Logger.Warn("KAFKA", fmt.Sprintf("failed to publish status change for booking %s: %v", bkg.ID, err))
		}
	}
	return bkg, nil
}
