package award_test

import (
	"testing"

	"awards/internal/award"
	"awards/models"

	"github.com/stretchr/testify/require"
)

func TestNormalizeExplicitVatPriceWins(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 10}
	q := models.SupplierQuotation{SupplierID: 5, UnitPrice: 100, UnitPriceWithVat: 115, VatRate: 20}

	fig := award.Normalize(q, item, nil)

	require.Equal(t, 115.0, fig.UnitPriceWithVat)
	require.Equal(t, 1150.0, fig.EffectiveTotal)
}

func TestNormalizeDerivesVatFromRate(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 10}
	q := models.SupplierQuotation{SupplierID: 5, UnitPrice: 90, VatRate: 20}

	fig := award.Normalize(q, item, nil)

	require.InDelta(t, 108.0, fig.UnitPriceWithVat, 1e-9)
	require.InDelta(t, 1080.0, fig.EffectiveTotal, 1e-9)
}

func TestNormalizeFallsBackToUnitPrice(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 3}
	q := models.SupplierQuotation{SupplierID: 5, UnitPrice: 85}

	fig := award.Normalize(q, item, nil)

	require.Equal(t, 85.0, fig.UnitPriceWithVat)
	require.Equal(t, 255.0, fig.EffectiveTotal)
}

func TestNormalizeMissingEverythingIsZero(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 10}

	fig := award.Normalize(models.SupplierQuotation{SupplierID: 5}, item, nil)

	require.Equal(t, 0.0, fig.UnitPriceWithVat)
	require.Equal(t, 0.0, fig.DeliveryShare)
	require.Equal(t, 0.0, fig.EffectiveTotal)
}

func TestNormalizeDeliveryOverrideWins(t *testing.T) {
	item := models.TenderLineItem{ID: 7, Quantity: 2}
	q := models.SupplierQuotation{SupplierID: 5, UnitPrice: 10, DeliveryCost: 50}

	overrides := award.Overrides{
		{LineItemID: 7, SupplierID: 5}: 15,
	}
	fig := award.Normalize(q, item, overrides)

	require.Equal(t, 15.0, fig.DeliveryShare)
	require.Equal(t, 35.0, fig.EffectiveTotal)

	// Переопределение для другой пары не влияет
	other := award.Overrides{
		{LineItemID: 7, SupplierID: 6}: 15,
	}
	fig = award.Normalize(q, item, other)
	require.Equal(t, 50.0, fig.DeliveryShare)
}

func TestNormalizeIsIdempotent(t *testing.T) {
	item := models.TenderLineItem{ID: 7, Quantity: 4}
	q := models.SupplierQuotation{SupplierID: 5, UnitPrice: 99.99, VatRate: 20, DeliveryCost: 12.5}
	overrides := award.Overrides{
		{LineItemID: 7, SupplierID: 5}: 7.25,
	}

	first := award.Normalize(q, item, overrides)
	second := award.Normalize(q, item, overrides)

	require.Equal(t, first, second)
}
