package promo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"ms-booking/internal/models"
)

// ErrNotApplicable is returned when a promo code does not resolve to an
// active, in-window offer.
var ErrNotApplicable = errors.New("promo code is invalid or expired")

var codePattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// OfferStore is the catalog surface the resolver reads from.
type OfferStore interface {
	// GetOfferByCode returns the active offer whose validity window contains
	// asOf, or nil when no such offer exists.
	GetOfferByCode(ctx context.Context, code string, asOf time.Time) (*models.Offer, error)
}

type Resolver struct {
	offers OfferStore
}

func NewResolver(offers OfferStore) *Resolver {
	return &Resolver{offers: offers}
}

// NormalizeCode trims surrounding whitespace and uppercases a promo code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Resolve validates a promo code against the catalog as of the given day.
// A code resolves only if it is non-empty after normalization and an active
// offer with that exact code is current at asOf.
func (r *Resolver) Resolve(ctx context.Context, code string, asOf time.Time) (*models.Offer, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, ErrNotApplicable
	}

	offer, err := r.offers.GetOfferByCode(ctx, normalized, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}
	if offer == nil {
		return nil, ErrNotApplicable
	}
	return offer, nil
}

// ValidateNewCode checks the rules for assigning a promo code to an offer on
// the administrative path: length 3-20, uppercase alphanumeric, and unique
// among other currently active-and-current offers. An offer with the same
// code that is inactive or out of its window does not block assignment.
// excludeOfferID skips the offer being updated itself.
func (r *Resolver) ValidateNewCode(ctx context.Context, code string, asOf time.Time, excludeOfferID string) (string, error) {
	normalized := NormalizeCode(code)
	if len(normalized) < 3 || len(normalized) > 20 {
		return "", errors.New("promo code must be 3-20 characters")
	}
	if !codePattern.MatchString(normalized) {
		return "", errors.New("promo code may only contain letters and digits")
	}

	existing, err := r.offers.GetOfferByCode(ctx, normalized, asOf)
	if err != nil {
		return "", fmt.Errorf("failed to check promo code uniqueness: %w", err)
	}
	if existing != nil && existing.ID != excludeOfferID {
		return "", errors.New("promo code already exists")
	}
	return normalized, nil
}
