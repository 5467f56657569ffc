package award

import "sort"

// Aggregate сводит результаты по всем позициям в итог тендера.
// Всегда полный пересчёт: пересчитывать итог инкрементально нельзя,
// иначе два пути вычисления одного агрегата начинают расходиться.
//
// SavingsPercent считается от сумм по тендеру, AvgSavingsPercent —
// как среднее процентов по позициям. На тендерах с неравными позициями
// эти числа законно различаются; наружу отдаются оба.
func Aggregate(results []Result) Summary {
	var s Summary
	winners := make(map[int]struct{})
	runners := make(map[int]struct{})

	var pctSum float64
	for _, r := range results {
		s.TotalEstimated += r.EstimatedTotal
		pctSum += r.SavingsPercent

		if r.Winner != nil {
			s.TotalWinner += r.Winner.Figure.EffectiveTotal
			s.TotalVat += (r.Winner.Figure.UnitPriceWithVat - r.Winner.Quotation.UnitPrice) * r.Item.Quantity
			s.TotalDelivery += r.Winner.Figure.DeliveryShare
			winners[r.Winner.Quotation.SupplierID] = struct{}{}
		}
		if r.RunnerUp != nil {
			runners[r.RunnerUp.Quotation.SupplierID] = struct{}{}
		}
	}

	s.TotalSavings = s.TotalEstimated - s.TotalWinner
	if s.TotalEstimated != 0 {
		s.SavingsPercent = s.TotalSavings / s.TotalEstimated * 100
	}
	if len(results) > 0 {
		s.AvgSavingsPercent = pctSum / float64(len(results))
	}

	s.WinnerSuppliers = sortedIDs(winners)
	s.RunnerUpSuppliers = sortedIDs(runners)
	return s
}

func sortedIDs(set map[int]struct{}) []int {
	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
