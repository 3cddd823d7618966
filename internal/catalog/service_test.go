package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ms-booking/internal/catalog"
	"ms-booking/internal/logger"
	"ms-booking/internal/models"
)

func setupTestService(t *testing.T) (*catalog.Service, *catalog.Store) {
	store := setupTestStore(t)
	return catalog.NewService(store, nil, logger.NewTestLogger()), store
}

func TestCreateOfferDerivesPercent(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	offer := &models.Offer{
		Title:           "Summer Sale",
		OriginalPrice:   fp(1500.0),
		DiscountedPrice: fp(1050.0),
		PromoCode:       " summer30 ",
	}
	require.NoError(t, svc.CreateOffer(ctx, offer))

	assert.NotEmpty(t, offer.ID)
	assert.Equal(t, "SUMMER30", offer.PromoCode)
	require.NotNil(t, offer.DiscountPercent)
	assert.Equal(t, 30, *offer.DiscountPercent)
	assert.NotNil(t, offer.StartDate)

	stored, err := store.GetOffer(ctx, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestCreateOfferDerivedPercentOverridesSubmitted(t *testing.T) {
	svc, _ := setupTestService(t)

	offer := &models.Offer{
		Title:           "Early Bird",
		OriginalPrice:   fp(2000.0),
		DiscountedPrice: fp(1500.0),
		DiscountPercent: ip(99),
	}
	require.NoError(t, svc.CreateOffer(context.Background(), offer))
	assert.Equal(t, 25, *offer.DiscountPercent)
}

func TestCreateOfferRejectsInvertedPrices(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.CreateOffer(context.Background(), &models.Offer{
		Title:           "Bad",
		OriginalPrice:   fp(100.0),
		DiscountedPrice: fp(200.0),
	})
	assert.Error(t, err)
}

func TestCreateOfferRequiresTitle(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.CreateOffer(context.Background(), &models.Offer{})
	assert.Error(t, err)
}

func TestCreateOfferDuplicatePromoCode(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()
	today := time.Now()

	require.NoError(t, store.CreateOffer(ctx, &models.Offer{
		ID: "o1", Title: "Existing", PromoCode: "SUMMER30", IsActive: true,
		EndDate: tp(today.AddDate(0, 0, 30)),
	}))

	err := svc.CreateOffer(ctx, &models.Offer{Title: "Clash", PromoCode: "SUMMER30"})
	assert.Error(t, err)
}

func TestUpdateOfferKeepsOwnPromoCode(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	offer := &models.Offer{Title: "Weekend Getaway", PromoCode: "WEEKEND20", IsActive: true}
	require.NoError(t, svc.CreateOffer(ctx, offer))

	offer.Title = "Weekend Getaway Extended"
	require.NoError(t, svc.UpdateOffer(ctx, offer))
}

func TestUpdateOfferNotFound(t *testing.T) {
	svc, _ := setupTestService(t)

	err := svc.UpdateOffer(context.Background(), &models.Offer{ID: "missing", Title: "X"})
	assert.Error(t, err)
}

func TestGetDestinationFallsBackWithoutCache(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, store.CreateDestination(ctx, &models.Destination{
		ID: "d1", Name: "Bali", Price: 899.0, IsActive: true,
	}))

	dest, err := svc.GetDestination(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, dest)
	assert.Equal(t, "Bali", dest.Name)
}
