package models

import (
	"time"

	"github.com/uptrace/bun"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending   BookingStatus = "PENDING"
	StatusApproved  BookingStatus = "APPROVED"
	StatusRejected  BookingStatus = "REJECTED"
	StatusCancelled BookingStatus = "CANCELLED"
	StatusCompleted BookingStatus = "COMPLETED"
)

// AllStatuses lists every booking status in display order.
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCancelled,
	StatusCompleted,
}

// ParseStatus maps a raw string onto a known status.
func ParseStatus(s string) (BookingStatus, bool) {
	for _, st := range AllStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type Booking struct {
	bun.BaseModel `bun:"table:bookings"`

	ID              string        `bun:"id,pk" json:"id"`
	UserID          string        `bun:"user_id,notnull" json:"user_id"`
	DestinationID   string        `bun:"destination_id,notnull" json:"destination_id"`
	TravelDate      time.Time     `bun:"travel_date,notnull" json:"travel_date"`
	Travelers       int           `bun:"travelers,notnull" json:"travelers"`
	Status          BookingStatus `bun:"status,notnull" json:"status"`
	ContactName     string        `bun:"contact_name,notnull" json:"contact_name"`
	ContactEmail    string        `bun:"contact_email,notnull" json:"contact_email"`
	ContactPhone    string        `bun:"contact_phone,nullzero" json:"contact_phone,omitempty"`
	SpecialRequests string        `bun:"special_requests,nullzero" json:"special_requests,omitempty"`
	PaymentSlipURL  string        `bun:"payment_slip_url,nullzero" json:"payment_slip_url,omitempty"`
	PromoCode       string        `bun:"promo_code,nullzero" json:"promo_code,omitempty"`
	DiscountAmount  float64       `bun:"discount_amount,notnull,default:0" json:"discount_amount"`
	TotalAmount     float64       `bun:"total_amount,notnull" json:"total_amount"`
	CreatedAt       time.Time     `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt       time.Time     `bun:"updated_at,notnull" json:"updated_at"`
}
