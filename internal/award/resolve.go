package award

import (
	"errors"

	"awards/models"
)

var ErrUnknownSupplier = errors.New("supplier has no quotation for this line item")

// Resolve определяет победителя и занявшего второе место по позиции.
// Победитель — котировка с минимальной effectiveTotal; при точном равенстве
// выигрывает котировка, встретившаяся раньше во входном порядке.
// Чистая функция: сохранение выбора — обязанность вызывающего.
func Resolve(item models.TenderLineItem, quotations []models.SupplierQuotation, overrides Overrides) Result {
	res := Result{
		Item:           item,
		EstimatedTotal: item.EstimatedUnitPrice * item.Quantity,
	}
	if len(quotations) == 0 {
		return res
	}

	ranked := rank(item, quotations, overrides)
	wi := cheapest(ranked, -1)
	res.Winner = &ranked[wi]
	if ri := cheapest(ranked, wi); ri >= 0 {
		res.RunnerUp = &ranked[ri]
	}
	fillSavings(&res)
	return res
}

// ResolveWithManualWinner принудительно назначает победителем котировку
// поставщика chosenSupplierID независимо от цены. Второе место по-прежнему
// получает самая дешёвая из оставшихся котировок. Экономия может быть
// отрицательной — это допустимо и не обрезается.
func ResolveWithManualWinner(item models.TenderLineItem, quotations []models.SupplierQuotation, chosenSupplierID int, overrides Overrides) (Result, error) {
	res := Result{
		Item:           item,
		EstimatedTotal: item.EstimatedUnitPrice * item.Quantity,
		Manual:         true,
	}

	ranked := rank(item, quotations, overrides)
	wi := -1
	for i := range ranked {
		if ranked[i].Quotation.SupplierID == chosenSupplierID {
			wi = i
			break
		}
	}
	if wi < 0 {
		return Result{}, ErrUnknownSupplier
	}

	res.Winner = &ranked[wi]
	if ri := cheapest(ranked, wi); ri >= 0 {
		res.RunnerUp = &ranked[ri]
	}
	fillSavings(&res)
	return res, nil
}

func rank(item models.TenderLineItem, quotations []models.SupplierQuotation, overrides Overrides) []Ranked {
	ranked := make([]Ranked, len(quotations))
	for i, q := range quotations {
		ranked[i] = Ranked{Quotation: q, Figure: Normalize(q, item, overrides)}
	}
	return ranked
}

// cheapest возвращает индекс минимальной effectiveTotal, пропуская exclude.
// Строгое "меньше" гарантирует стабильность при равных суммах.
func cheapest(ranked []Ranked, exclude int) int {
	best := -1
	for i := range ranked {
		if i == exclude {
			continue
		}
		if best < 0 || ranked[i].Figure.EffectiveTotal < ranked[best].Figure.EffectiveTotal {
			best = i
		}
	}
	return best
}

func fillSavings(res *Result) {
	res.Savings = res.EstimatedTotal - res.Winner.Figure.EffectiveTotal
	if res.EstimatedTotal != 0 {
		res.SavingsPercent = res.Savings / res.EstimatedTotal * 100
	}
}
