package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"ms-booking/internal/logger"
	"ms-booking/internal/models"
	"ms-booking/internal/promo"
)

// Service fronts the destination/offer store with an optional destination
// cache and enforces the administrative offer rules.
type Service struct {
	store    *Store
	cache    *Cache
	resolver *promo.Resolver
	logger   *logger.Logger
}

func NewService(store *Store, cache *Cache, log *logger.Logger) *Service {
	s := &Service{store: store, cache: cache, logger: log}
	s.resolver = promo.NewResolver(store)
	return s
}

// Resolver exposes the promo resolver bound to this catalog.
func (s *Service) Resolver() *promo.Resolver {
	return s.resolver
}

// GetDestination reads through the cache when one is configured.
func (s *Service) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	if s.cache != nil {
		dest, err := s.cache.GetDestination(ctx, id)
		if err != nil {
			s.logger.Warn("CACHE", fmt.Sprintf("destination cache read failed: %v", err))
		} else if dest != nil {
			return dest, nil
		}
	}

	dest, err := s.store.GetDestination(ctx, id)
	if err != nil || dest == nil {
		return dest, err
	}

	if s.cache != nil {
		if err := s.cache.SetDestination(ctx, dest); err != nil {
			s.logger.Warn("CACHE", fmt.Sprintf("destination cache write failed: %v", err))
		}
	}
	return dest, nil
}

func (s *Service) ListActiveDestinations(ctx context.Context) ([]models.Destination, error) {
	return s.store.ListActiveDestinations(ctx)
}

// GetOfferByCode satisfies promo.OfferStore via the underlying store.
func (s *Service) GetOfferByCode(ctx context.Context, code string, asOf time.Time) (*models.Offer, error) {
	return s.store.GetOfferByCode(ctx, code, asOf)
}

func (s *Service) ListOffers(ctx context.Context) ([]models.Offer, error) {
	return s.store.ListOffers(ctx)
}

func (s *Service) ListActiveCurrentOffers(ctx context.Context, asOf time.Time) ([]models.Offer, error) {
	return s.store.ListActiveCurrentOffers(ctx, asOf)
}

// CreateOffer validates and persists a new promotional offer. A promo code,
// if supplied, must satisfy the code rules and be unique among offers that
// are active and current as of today. When both prices are present the
// discount percent is derived from them, overriding any submitted percent.
func (s *Service) CreateOffer(ctx context.Context, offer *models.Offer) error {
	if offer.Title == "" {
		return errors.New("title is required")
	}
	if err := s.prepareOffer(ctx, offer, ""); err != nil {
		return err
	}

	offer.ID = uuid.NewString()
	if offer.StartDate == nil {
		today := time.Now().Truncate(24 * time.Hour)
		offer.StartDate = &today
	}

	if err := s.store.CreateOffer(ctx, offer); err != nil {
		return fmt.Errorf("failed to create offer: %w", err)
	}
	s.logger.Info("CATALOG", fmt.Sprintf("Offer %s created (code %q)", offer.ID, offer.PromoCode))
	return nil
}

// UpdateOffer validates and persists changes to an existing offer.
func (s *Service) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	existing, err := s.store.GetOffer(ctx, offer.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.New("offer not found")
	}
	if offer.Title == "" {
		return errors.New("title is required")
	}
	if err := s.prepareOffer(ctx, offer, offer.ID); err != nil {
		return err
	}

	if err := s.store.UpdateOffer(ctx, offer); err != nil {
		return fmt.Errorf("failed to update offer: %w", err)
	}
	s.logger.Info("CATALOG", fmt.Sprintf("Offer %s updated", offer.ID))
	return nil
}

func (s *Service) DeleteOffer(ctx context.Context, id string) error {
	return s.store.DeleteOffer(ctx, id)
}

// prepareOffer applies the shared validation and derivation rules.
func (s *Service) prepareOffer(ctx context.Context, offer *models.Offer, excludeID string) error {
	if offer.DiscountedPrice != nil && offer.OriginalPrice != nil && *offer.DiscountedPrice > *offer.OriginalPrice {
		return errors.New("discounted price must be less than original price")
	}

	if offer.PromoCode != "" {
		normalized, err := s.resolver.ValidateNewCode(ctx, offer.PromoCode, time.Now(), excludeID)
		if err != nil {
			return err
		}
		offer.PromoCode = normalized
	}

	if offer.OriginalPrice != nil && offer.DiscountedPrice != nil {
		percent := int(math.Round(100.0 - (*offer.DiscountedPrice / *offer.OriginalPrice * 100.0)))
		offer.DiscountPercent = &percent
	}
	return nil
}
