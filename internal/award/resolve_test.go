package award_test

import (
	"testing"

	"awards/internal/award"
	"awards/models"

	"github.com/stretchr/testify/require"
)

// Позиция: количество 10, оценочная цена 100 (оценка итога 1000).
// X: 90 + НДС 20% = 1080; Y: 85 без НДС + доставка 50 = 900.
func scenarioItem() (models.TenderLineItem, []models.SupplierQuotation) {
	item := models.TenderLineItem{ID: 1, Quantity: 10, EstimatedUnitPrice: 100}
	quotations := []models.SupplierQuotation{
		{SupplierID: 1, LineItemID: 1, UnitPrice: 90, VatRate: 20},
		{SupplierID: 2, LineItemID: 1, UnitPrice: 85, DeliveryCost: 50},
	}
	return item, quotations
}

func TestResolvePicksCheapestEffectiveTotal(t *testing.T) {
	item, quotations := scenarioItem()

	res := award.Resolve(item, quotations, nil)

	require.NotNil(t, res.Winner)
	require.Equal(t, 2, res.Winner.Quotation.SupplierID)
	require.Equal(t, 900.0, res.Winner.Figure.EffectiveTotal)

	require.NotNil(t, res.RunnerUp)
	require.Equal(t, 1, res.RunnerUp.Quotation.SupplierID)
	require.InDelta(t, 1080.0, res.RunnerUp.Figure.EffectiveTotal, 1e-9)

	require.Equal(t, 1000.0, res.EstimatedTotal)
	require.Equal(t, 100.0, res.Savings)
	require.Equal(t, 10.0, res.SavingsPercent)
	require.False(t, res.Manual)
}

func TestResolveIsDeterministicOnTies(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 5, EstimatedUnitPrice: 20}
	quotations := []models.SupplierQuotation{
		{SupplierID: 3, UnitPrice: 10},
		{SupplierID: 1, UnitPrice: 10},
		{SupplierID: 2, UnitPrice: 10},
	}

	// При равных суммах побеждает первая во входном порядке, всегда
	for i := 0; i < 50; i++ {
		res := award.Resolve(item, quotations, nil)
		require.Equal(t, 3, res.Winner.Quotation.SupplierID)
		require.Equal(t, 1, res.RunnerUp.Quotation.SupplierID)
	}
}

func TestResolveSingleQuotationHasNoRunnerUp(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 2, EstimatedUnitPrice: 10}
	quotations := []models.SupplierQuotation{{SupplierID: 1, UnitPrice: 9}}

	res := award.Resolve(item, quotations, nil)

	require.NotNil(t, res.Winner)
	require.Nil(t, res.RunnerUp)
}

func TestResolveNoQuotations(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 2, EstimatedUnitPrice: 10}

	res := award.Resolve(item, nil, nil)

	require.Nil(t, res.Winner)
	require.Nil(t, res.RunnerUp)
	require.Equal(t, 20.0, res.EstimatedTotal)
	require.Equal(t, 0.0, res.Savings)
}

func TestResolveZeroEstimateGuard(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 10}
	quotations := []models.SupplierQuotation{{SupplierID: 1, UnitPrice: 5}}

	res := award.Resolve(item, quotations, nil)

	require.Equal(t, 0.0, res.EstimatedTotal)
	require.Equal(t, -50.0, res.Savings)
	require.Equal(t, 0.0, res.SavingsPercent)
}

func TestResolveWithManualWinnerAllowsNegativeSavings(t *testing.T) {
	item, quotations := scenarioItem()

	res, err := award.ResolveWithManualWinner(item, quotations, 1, nil)
	require.NoError(t, err)

	require.Equal(t, 1, res.Winner.Quotation.SupplierID)
	require.InDelta(t, 1080.0, res.Winner.Figure.EffectiveTotal, 1e-9)

	// Второе место — всё равно самая дешёвая из оставшихся
	require.Equal(t, 2, res.RunnerUp.Quotation.SupplierID)
	require.Equal(t, 900.0, res.RunnerUp.Figure.EffectiveTotal)

	// Экономия отрицательная и не обрезается до нуля
	require.InDelta(t, -80.0, res.Savings, 1e-9)
	require.True(t, res.Manual)
}

func TestResolveWithManualWinnerUnknownSupplier(t *testing.T) {
	item, quotations := scenarioItem()

	_, err := award.ResolveWithManualWinner(item, quotations, 99, nil)
	require.ErrorIs(t, err, award.ErrUnknownSupplier)
}
