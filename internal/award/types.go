package award

import "awards/models"

// Ключ распределения доставки: пара позиция/поставщик
type AllocationKey struct {
	LineItemID int
	SupplierID int
}

// Overrides — действующие переопределения доставки по парам позиция/поставщик
type Overrides map[AllocationKey]float64

// Сопоставимые цифры котировки (вычисляются, не хранятся)
type Figure struct {
	UnitPriceWithVat float64 `json:"unitPriceWithVat"`
	DeliveryShare    float64 `json:"deliveryShare"`
	EffectiveTotal   float64 `json:"effectiveTotal"`
}

// Котировка вместе с её сопоставимыми цифрами
type Ranked struct {
	Quotation models.SupplierQuotation `json:"quotation"`
	Figure    Figure                   `json:"figure"`
}

// Результат присуждения по одной позиции
type Result struct {
	Item           models.TenderLineItem `json:"lineItem"`
	Winner         *Ranked               `json:"winner"`
	RunnerUp       *Ranked               `json:"runnerUp"`
	EstimatedTotal float64               `json:"estimatedTotal"`
	Savings        float64               `json:"savings"`
	SavingsPercent float64               `json:"savingsPercent"`
	Manual         bool                  `json:"manual"`
}

// Итог по тендеру, всегда пересчитывается из полного набора результатов
type Summary struct {
	TotalEstimated    float64 `json:"totalEstimated"`
	TotalWinner       float64 `json:"totalWinner"`
	TotalSavings      float64 `json:"totalSavings"`
	SavingsPercent    float64 `json:"savingsPercent"`
	AvgSavingsPercent float64 `json:"avgSavingsPercent"`
	TotalVat          float64 `json:"totalVat"`
	TotalDelivery     float64 `json:"totalDelivery"`
	WinnerSuppliers   []int   `json:"winnerSuppliers"`
	RunnerUpSuppliers []int   `json:"runnerUpSuppliers"`
}

// Пара позиция/поставщик для передачи в создание контракта
type WinnerPair struct {
	LineItemID int `json:"lineItemId"`
	SupplierID int `json:"supplierId"`
}
