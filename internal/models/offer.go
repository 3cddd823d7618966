package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Offer is a promotional campaign. The discount is expressed either as an
// explicit percentage or as an original/discounted price pair; StartDate and
// EndDate are optional bounds of the validity window (nil = unbounded).
type Offer struct {
	bun.BaseModel `bun:"table:offers"`

	ID              string     `bun:"id,pk" json:"id"`
	Title           string     `bun:"title,notnull" json:"title"`
	Description     string     `bun:"description,nullzero" json:"description,omitempty"`
	ImageURL        string     `bun:"image_url,nullzero" json:"image_url,omitempty"`
	OriginalPrice   *float64   `bun:"original_price,nullzero" json:"original_price,omitempty"`
	DiscountedPrice *float64   `bun:"discounted_price,nullzero" json:"discounted_price,omitempty"`
	DiscountPercent *int       `bun:"discount_percent,nullzero" json:"discount_percent,omitempty"`
	StartDate       *time.Time `bun:"start_date,nullzero" json:"start_date,omitempty"`
	EndDate         *time.Time `bun:"end_date,nullzero" json:"end_date,omitempty"`
	IsActive        bool       `bun:"is_active,notnull,default:true" json:"is_active"`
	PromoCode       string     `bun:"promo_code,nullzero" json:"promo_code,omitempty"`
}

// CurrentAt reports whether the offer's validity window contains the given day.
func (o *Offer) CurrentAt(day time.Time) bool {
	if o.StartDate != nil && day.Before(*o.StartDate) {
		return false
	}
	if o.EndDate != nil && day.After(*o.EndDate) {
		return false
	}
	return true
}
