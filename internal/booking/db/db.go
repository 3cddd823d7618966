package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CreateBooking → insert new booking
func (d *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	_, err := d.Bun.NewInsert().Model(booking).Exec(ctx)
	return err
}

// GetBookingByID → fetch one booking, nil when absent
func (d *DB) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	var booking models.Booking
	err := d.Bun.NewSelect().
		Model(&booking).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// UpdateBooking → update mutable fields
func (d *DB) UpdateBooking(ctx context.Context, booking *models.Booking) error {
	_, err := d.Bun.NewUpdate().
		Model(booking).
		Column("travel_date", "travelers", "status", "contact_name", "contact_email",
			"contact_phone", "special_requests", "payment_slip_url", "promo_code",
			"discount_amount", "total_amount", "updated_at").
		Where("id = ?", booking.ID).
		Exec(ctx)
	return err
}

// DeleteBooking → remove the record permanently
func (d *DB) DeleteBooking(ctx context.Context, id string) error {
	_, err := d.Bun.NewDelete().
		Model((*models.Booking)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

// GetBookingsByUser → all bookings for a user, newest first
func (d *DB) GetBookingsByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingsByStatus → all bookings in a status, newest first
func (d *DB) GetBookingsByStatus(ctx context.Context, status models.BookingStatus) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Where("status = ?", status).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingsByDestination → all bookings against a destination, newest first
func (d *DB) GetBookingsByDestination(ctx context.Context, destinationID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Where("destination_id = ?", destinationID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetAllBookings → every booking, newest first
func (d *DB) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetBookingsByTravelDateRange → bookings whose travel date falls in [start, end)
func (d *DB) GetBookingsByTravelDateRange(ctx context.Context, start, end time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := d.Bun.NewSelect().
		Model(&bookings).
		Where("travel_date >= ?", start).
		Where("travel_date < ?", end).
		Order("travel_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// CountByStatus → number of bookings in a status
func (d *DB) CountByStatus(ctx context.Context, status models.BookingStatus) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Booking)(nil)).
		Where("status = ?", status).
		Count(ctx)
}

// CountAll → total number of bookings
func (d *DB) CountAll(ctx context.Context) (int, error) {
	return d.Bun.NewSelect().
		Model((*models.Booking)(nil)).
		Count(ctx)
}
