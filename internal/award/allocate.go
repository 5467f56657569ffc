package award

import "math"

// Допуск на копеечные расхождения при проверке баланса распределений
const balanceTolerance = 0.01

// ProposeSplit делит заявленную стоимость доставки поставщика поровну между
// выигранными им позициями. Взвешенное деление не поддерживается.
// Результат — предложение: оператор должен подтвердить его до сохранения.
func ProposeSplit(declaredDeliveryCost float64, lineItemIDs []int) map[int]float64 {
	split := make(map[int]float64)
	if declaredDeliveryCost <= 0 || len(lineItemIDs) == 0 {
		return split
	}
	share := declaredDeliveryCost / float64(len(lineItemIDs))
	for _, id := range lineItemIDs {
		split[id] = share
	}
	return split
}

// CheckBalance сравнивает сумму распределений с заявленной стоимостью
// доставки. Расхождение — предупреждение оператору, а не блокировка.
func CheckBalance(declaredDeliveryCost float64, allocations map[int]float64) (diff float64, balanced bool) {
	var sum float64
	for _, amount := range allocations {
		sum += amount
	}
	diff = sum - declaredDeliveryCost
	return diff, math.Abs(diff) <= balanceTolerance
}
