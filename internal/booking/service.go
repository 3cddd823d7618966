package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/pricing"
	"ms-booking/internal/promo"
)

type DBLayer interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id string) (*models.Booking, error)
	UpdateBooking(ctx context.Context, booking *models.Booking) error
	DeleteBooking(ctx context.Context, id string) error
	GetBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error)
}

type Catalog interface {
	GetDestination(ctx context.Context, id string) (*models.Destination, error)
}

type PromoResolver interface {
	Resolve(ctx context.Context, code string, asOf time.Time) (*models.Offer, error)
}

type EventPublisher interface {
	PublishBookingEvent(topic, eventType string, booking *models.Booking) error
}

// Topics names the Kafka topics booking lifecycle events go to.
type Topics struct {
	Created   string
	Cancelled string
}

// BookingService orchestrates creation, retrieval, cancellation and deletion
// of bookings. Every operation takes the authenticated caller's user id
// explicitly; there is no ambient identity.
type BookingService struct {
	DB      DBLayer
	Catalog Catalog
	Promo   PromoResolver
	Events  EventPublisher
	Logger  *logger.Logger
	Topics  Topics

	// Now supplies the current time; tests override it for stable
	// current-date comparisons.
	Now func() time.Time
}

func NewBookingService(db DBLayer, catalog Catalog, resolver PromoResolver, events EventPublisher, log *logger.Logger, topics Topics) *BookingService {
	return &BookingService{
		DB:      db,
		Catalog: catalog,
		Promo:   resolver,
		Events:  events,
		Logger:  log,
		Topics:  topics,
		Now:     time.Now,
	}
}

type CreateBookingInput struct {
	DestinationID   string    `json:"destination_id"`
	TravelDate      time.Time `json:"travel_date"`
	Travelers       int       `json:"travelers"`
	ContactName     string    `json:"contact_name"`
	ContactEmail    string    `json:"contact_email"`
	ContactPhone    string    `json:"contact_phone"`
	SpecialRequests string    `json:"special_requests"`
	PaymentSlipURL  string    `json:"payment_slip_url"`
	PromoCode       string    `json:"promo_code"`
}

// Create validates the input, prices the booking and persists it in PENDING.
// A supplied promo code that does not resolve is a field validation error,
// never a silent ignore.
func (s *BookingService) Create(ctx context.Context, userID string, input CreateBookingInput) (*models.Booking, error) {
	dest, err := s.Catalog.GetDestination(ctx, input.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	if dest == nil || !dest.IsActive {
		return nil, &NotFoundError{Resource: "destination", ID: input.DestinationID}
	}

	today := dateOnly(s.Now())
	var fieldErrs ValidationErrors
	if input.TravelDate.IsZero() {
		fieldErrs = append(fieldErrs, ValidationError{Field: "travel_date", Message: "Travel date is required"})
	} else if dateOnly(input.TravelDate).Before(today) {
		fieldErrs = append(fieldErrs, ValidationError{Field: "travel_date", Message: "Travel date cannot be in the past"})
	}
	if input.Travelers < 1 {
		fieldErrs = append(fieldErrs, ValidationError{Field: "travelers", Message: "Number of travelers must be at least 1"})
	}
	if strings.TrimSpace(input.ContactName) == "" {
		fieldErrs = append(fieldErrs, ValidationError{Field: "contact_name", Message: "Contact name is required"})
	}
	if strings.TrimSpace(input.ContactEmail) == "" {
		fieldErrs = append(fieldErrs, ValidationError{Field: "contact_email", Message: "Contact email is required"})
	}

	var offer *models.Offer
	promoCode := promo.NormalizeCode(input.PromoCode)
	if promoCode != "" {
		offer, err = s.Promo.Resolve(ctx, promoCode, today)
		if errors.Is(err, promo.ErrNotApplicable) {
			fieldErrs = append(fieldErrs, ValidationError{Field: "promo_code", Message: "Invalid or expired promo code"})
		} else if err != nil {
			return nil, fmt.Errorf("failed to resolve promo code: %w", err)
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	baseAmount := dest.Price * float64(input.Travelers)
	discount := pricing.ComputeDiscount(baseAmount, offer)

	now := s.Now()
	bkg := &models.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		DestinationID:   dest.ID,
		TravelDate:      dateOnly(input.TravelDate),
		Travelers:       input.Travelers,
		Status:          models.StatusPending,
		ContactName:     strings.TrimSpace(input.ContactName),
		ContactEmail:    strings.TrimSpace(input.ContactEmail),
		ContactPhone:    strings.TrimSpace(input.ContactPhone),
		SpecialRequests: input.SpecialRequests,
		PaymentSlipURL:  input.PaymentSlipURL,
		PromoCode:       promoCode,
		DiscountAmount:  discount,
		TotalAmount:     pricing.ComputeTotal(dest.Price, input.Travelers, discount),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.DB.CreateBooking(ctx, bkg); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Logger.LogBooking("CREATE", bkg.ID, fmt.Sprintf("user %s, destination %s, total %.2f", userID, dest.ID, bkg.TotalAmount))
	s.publish(s.Topics.Created, "booking_created", bkg)
	return bkg, nil
}

// BookingList partitions a user's bookings around the current date.
type BookingList struct {
	All      []models.Booking `json:"all"`
	Upcoming []models.Booking `json:"upcoming"`
	Past     []models.Booking `json:"past"`
}

// ListForUser returns the caller's bookings newest-first, partitioned into
// upcoming (travel date today or later) and past.
func (s *BookingService) ListForUser(ctx context.Context, userID string) (*BookingList, error) {
	bookings, err := s.DB.GetBookingsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	list := &BookingList{
		All:      bookings,
		Upcoming: []models.Booking{},
		Past:     []models.Booking{},
	}
	today := dateOnly(s.Now())
	for _, b := range bookings {
		if dateOnly(b.TravelDate).Before(today) {
			list.Past = append(list.Past, b)
		} else {
			list.Upcoming = append(list.Upcoming, b)
		}
	}
	return list, nil
}

// Get returns one booking, failing with NotFoundError when absent and
// ForbiddenError when the caller is not the owner.
func (s *BookingService) Get(ctx context.Context, id, callerID string) (*models.Booking, error) {
	return s.getOwned(ctx, id, callerID)
}

// Cancel transitions the caller's PENDING booking to CANCELLED.
func (s *BookingService) Cancel(ctx context.Context, id, callerID string) (*models.Booking, error) {
	bkg, err := s.getOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	next, err := CancelByOwner(bkg.Status)
	if err != nil {
		return nil, err
	}

	bkg.Status = next
	bkg.UpdatedAt = s.Now()
	if err := s.DB.UpdateBooking(ctx, bkg); err != nil {
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.Logger.LogBooking("CANCEL", bkg.ID, "cancelled by owner")
	s.publish(s.Topics.Cancelled, "booking_cancelled", bkg)
	return bkg, nil
}

// Delete permanently removes a CANCELLED booking owned by the caller.
func (s *BookingService) Delete(ctx context.Context, id, callerID string) error {
	bkg, err := s.getOwned(ctx, id, callerID)
	if err != nil {
		return err
	}
	if err := CanDelete(bkg.Status); err != nil {
		return err
	}

	if err := s.DB.DeleteBooking(ctx, id); err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	s.Logger.LogBooking("DELETE", id, "deleted by owner")
	return nil
}

// UpdateTravelers changes the traveler count on a PENDING booking and
// recomputes the total from the destination's current unit price. The
// discount stays fixed in absolute terms; it is not re-derived from a
// percentage.
func (s *BookingService) UpdateTravelers(ctx context.Context, id, callerID string, travelers int) (*models.Booking, error) {
	if travelers < 1 {
		return nil, ValidationErrors{{Field: "travelers", Message: "Number of travelers must be at least 1"}}
	}

	bkg, err := s.getOwned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}
	if bkg.Status != models.StatusPending {
		return nil, &IllegalTransitionError{From: bkg.Status, Reason: "only pending bookings can be edited"}
	}

	dest, err := s.Catalog.GetDestination(ctx, bkg.DestinationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load destination: %w", err)
	}
	if dest == nil {
		return nil, &NotFoundError{Resource: "destination", ID: bkg.DestinationID}
	}

	bkg.Travelers = travelers
	bkg.TotalAmount = pricing.ComputeTotal(dest.Price, travelers, bkg.DiscountAmount)
	bkg.UpdatedAt = s.Now()
	if err := s.DB.UpdateBooking(ctx, bkg); err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.Logger.LogBooking("UPDATE", bkg.ID, fmt.Sprintf("travelers set to %d, total %.2f", travelers, bkg.TotalAmount))
	return bkg, nil
}

func (s *BookingService) getOwned(ctx context.Context, id, callerID string) (*models.Booking, error) {
	bkg, err := s.DB.GetBookingByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if bkg == nil {
		return nil, &NotFoundError{Resource: "booking", ID: id}
	}
	if bkg.UserID != callerID {
		return nil, &ForbiddenError{Resource: "booking", ID: id}
	}
	return bkg, nil
}

// publish sends a lifecycle event; failures are logged, never surfaced.
func (s *BookingService) publish(topic, eventType string, bkg *models.Booking) {
	if s.Events == nil || topic == "" {
		return
	}
	if err := s.Events.PublishBookingEvent(topic, eventType, bkg); err != nil {
		s.Logger.Warn("KAFKA", fmt.Sprintf("failed to publish %s for booking %s: %v", eventType, bkg.ID, err))
	}
}

// dateOnly truncates a timestamp to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
