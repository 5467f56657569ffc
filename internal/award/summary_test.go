package award_test

import (
	"testing"

	"awards/internal/award"
	"awards/models"

	"github.com/stretchr/testify/require"
)

func TestAggregateEmptyTender(t *testing.T) {
	s := award.Aggregate(nil)

	require.Equal(t, 0.0, s.TotalEstimated)
	require.Equal(t, 0.0, s.TotalWinner)
	require.Equal(t, 0.0, s.TotalSavings)
	require.Equal(t, 0.0, s.SavingsPercent)
	require.Equal(t, 0.0, s.AvgSavingsPercent)
	require.Empty(t, s.WinnerSuppliers)
	require.Empty(t, s.RunnerUpSuppliers)
}

func TestAggregateTotalsMatchItemSums(t *testing.T) {
	items := []models.TenderLineItem{
		{ID: 1, Quantity: 10, EstimatedUnitPrice: 100},
		{ID: 2, Quantity: 5, EstimatedUnitPrice: 40},
		{ID: 3, Quantity: 1, EstimatedUnitPrice: 500},
	}
	quotes := map[int][]models.SupplierQuotation{
		1: {{SupplierID: 1, UnitPrice: 90}, {SupplierID: 2, UnitPrice: 95}},
		2: {{SupplierID: 2, UnitPrice: 35, DeliveryCost: 10}},
		3: {{SupplierID: 3, UnitPrice: 450}, {SupplierID: 1, UnitPrice: 480}},
	}

	var results []award.Result
	var wantWinnerTotal float64
	for _, item := range items {
		res := award.Resolve(item, quotes[item.ID], nil)
		wantWinnerTotal += res.Winner.Figure.EffectiveTotal
		results = append(results, res)
	}

	s := award.Aggregate(results)

	require.Equal(t, wantWinnerTotal, s.TotalWinner)
	require.Equal(t, 1700.0, s.TotalEstimated)
	require.Equal(t, s.TotalEstimated-s.TotalWinner, s.TotalSavings)
	require.Equal(t, []int{1, 2, 3}, s.WinnerSuppliers)
	require.Equal(t, []int{1, 2}, s.RunnerUpSuppliers)
}

func TestAggregateZeroEstimateGuard(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 10}
	res := award.Resolve(item, []models.SupplierQuotation{{SupplierID: 1, UnitPrice: 5}}, nil)

	s := award.Aggregate([]award.Result{res})

	require.Equal(t, 0.0, s.TotalEstimated)
	require.Equal(t, 0.0, s.SavingsPercent)
}

// Средний процент по позициям и процент от сумм тендера — разные числа:
// на позициях сильно разного размера они законно расходятся.
func TestAggregateAverageDeviationDiffersFromTotalsRatio(t *testing.T) {
	// Маленькая позиция с экономией 50%, большая — с экономией 0%
	small := award.Resolve(
		models.TenderLineItem{ID: 1, Quantity: 1, EstimatedUnitPrice: 10},
		[]models.SupplierQuotation{{SupplierID: 1, UnitPrice: 5}}, nil)
	big := award.Resolve(
		models.TenderLineItem{ID: 2, Quantity: 1, EstimatedUnitPrice: 1000},
		[]models.SupplierQuotation{{SupplierID: 2, UnitPrice: 1000}}, nil)

	s := award.Aggregate([]award.Result{small, big})

	require.Equal(t, 25.0, s.AvgSavingsPercent)
	// От сумм: экономия 5 из 1010
	require.InDelta(t, 5.0/1010.0*100, s.SavingsPercent, 1e-9)
	require.NotEqual(t, s.AvgSavingsPercent, s.SavingsPercent)
}

func TestAggregateVatAndDelivery(t *testing.T) {
	item := models.TenderLineItem{ID: 1, Quantity: 10, EstimatedUnitPrice: 100}
	res := award.Resolve(item, []models.SupplierQuotation{
		{SupplierID: 1, UnitPrice: 80, VatRate: 20, DeliveryCost: 30},
	}, nil)

	s := award.Aggregate([]award.Result{res})

	require.InDelta(t, 160.0, s.TotalVat, 1e-9) // (96-80)*10
	require.Equal(t, 30.0, s.TotalDelivery)
}
