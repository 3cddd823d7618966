package catalog

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"ms-booking/internal/models"
)

// Store is the persistence layer for destinations and offers.
type Store struct {
	Bun *bun.DB
}

// ---------------- DESTINATIONS ----------------

// GetDestination fetches one destination by id, returning nil when absent.
func (s *Store) GetDestination(ctx context.Context, id string) (*models.Destination, error) {
	var dest models.Destination
	err := s.Bun.NewSelect().
		Model(&dest).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dest, nil
}

func (s *Store) ListActiveDestinations(ctx context.Context) ([]models.Destination, error) {
	var dests []models.Destination
	err := s.Bun.NewSelect().
		Model(&dests).
		Where("is_active = ?", true).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return dests, nil
}

func (s *Store) CreateDestination(ctx context.Context, dest *models.Destination) error {
	_, err := s.Bun.NewInsert().Model(dest).Exec(ctx)
	return err
}

// ---------------- OFFERS ----------------

func (s *Store) GetOffer(ctx context.Context, id string) (*models.Offer, error) {
	var offer models.Offer
	err := s.Bun.NewSelect().
		Model(&offer).
		Where("id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetOfferByCode returns the active offer with the given promo code whose
// validity window contains asOf, or nil when no such offer exists.
func (s *Store) GetOfferByCode(ctx context.Context, code string, asOf time.Time) (*models.Offer, error) {
	var offer models.Offer
	err := s.Bun.NewSelect().
		Model(&offer).
		Where("promo_code = ?", code).
		Where("is_active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", asOf).
		Where("end_date IS NULL OR end_date >= ?", asOf).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (s *Store) ListOffers(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	err := s.Bun.NewSelect().
		Model(&offers).
		Order("title ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return offers, nil
}

// ListActiveCurrentOffers returns active offers whose window contains asOf.
func (s *Store) ListActiveCurrentOffers(ctx context.Context, asOf time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := s.Bun.NewSelect().
		Model(&offers).
		Where("is_active = ?", true).
		Where("start_date IS NULL OR start_date <= ?", asOf).
		Where("end_date IS NULL OR end_date >= ?", asOf).
		Order("title ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (s *Store) CreateOffer(ctx context.Context, offer *models.Offer) error {
	_, err := s.Bun.NewInsert().Model(offer).Exec(ctx)
	return err
}

func (s *Store) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	_, err := s.Bun.NewUpdate().
		Model(offer).
		Column("title", "description", "image_url", "original_price", "discounted_price",
			"discount_percent", "start_date", "end_date", "is_active", "promo_code").
		Where("id = ?", offer.ID).
		Exec(ctx)
	return err
}

func (s *Store) DeleteOffer(ctx context.Context, id string) error {
	_, err := s.Bun.NewDelete().
		Model((*models.Offer)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
