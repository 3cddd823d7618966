package pricing

import "ms-booking/internal/models"

// ComputeTotal returns the amount charged for a booking: unit price times
// traveler count minus the absolute discount, never below zero.
func ComputeTotal(unitPrice float64, travelers int, discountAmount float64) float64 {
	total := unitPrice*float64(travelers) - discountAmount
	if total < 0 {
		return 0
	}
	return total
}

// ComputeDiscount calculates the absolute discount an offer grants on the
// given base amount (unit price × travelers, before discount).
//
// An explicit discount percent takes precedence; otherwise the percent is
// derived from the offer's original/discounted price pair. An offer with
// neither grants no discount.
func ComputeDiscount(baseAmount float64, offer *models.Offer) float64 {
	if offer == nil {
		return 0
	}

	switch {
	case offer.DiscountPercent != nil:
		return baseAmount * (float64(*offer.DiscountPercent) / 100.0)
	case offer.OriginalPrice != nil && offer.DiscountedPrice != nil:
		return baseAmount * (EffectivePercent(*offer.OriginalPrice, *offer.DiscountedPrice) / 100.0)
	default:
		return 0
	}
}

// EffectivePercent derives the discount percentage implied by an
// original/discounted price pair.
func EffectivePercent(originalPrice, discountedPrice float64) float64 {
	if originalPrice == 0 {
		return 0
	}
	return 100.0 - (discountedPrice/originalPrice)*100.0
}
