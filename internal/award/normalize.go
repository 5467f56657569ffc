package award

import "awards/models"

// Normalize приводит котировку к сопоставимым цифрам по единой политике:
// отсутствующие числовые поля считаются нулями, а не ошибкой.
//
// Цена за единицу с НДС: явная цена с НДС, если она положительная;
// иначе unitPrice * (1 + vatRate/100); при нулевой ставке — unitPrice.
// Доля доставки: переопределение для пары позиция/поставщик, если есть,
// иначе заявленная в котировке стоимость доставки.
func Normalize(q models.SupplierQuotation, item models.TenderLineItem, overrides Overrides) Figure {
	unitWithVat := q.UnitPriceWithVat
	if unitWithVat <= 0 {
		if q.VatRate > 0 {
			unitWithVat = q.UnitPrice * (1 + q.VatRate/100)
		} else {
			unitWithVat = q.UnitPrice
		}
	}

	delivery := q.DeliveryCost
	if v, ok := overrides[AllocationKey{LineItemID: item.ID, SupplierID: q.SupplierID}]; ok {
		delivery = v
	}

	return Figure{
		UnitPriceWithVat: unitWithVat,
		DeliveryShare:    delivery,
		EffectiveTotal:   unitWithVat*item.Quantity + delivery,
	}
}
