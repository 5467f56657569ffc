package award

import (
	"fmt"
	"strings"
)

// Префикс автосгенерированного примечания. По нему отличаем сгенерированный
// текст от введённого человеком: человеческий текст никогда не перезаписываем.
const autoNotePrefix = "Условия оплаты: "

// Устаревший формат автозаполнения, встречается в старых записях
const legacyAutoNotePrefix = "Оплата: "

// AutoNote возвращает примечание для пары позиция/поставщик.
// Пустое примечание и примечание в узнаваемом автосгенерированном формате
// заполняются из условий оплаты и срока поставки предложения; текст,
// написанный человеком, возвращается без изменений.
func AutoNote(existing, paymentTerms, deliveryPeriod string) (text string, generated bool) {
	existing = strings.TrimSpace(existing)
	if existing != "" && !IsAutoNote(existing) {
		return existing, false
	}

	generatedText := composeNote(paymentTerms, deliveryPeriod)
	if generatedText == "" {
		return existing, false
	}
	return generatedText, true
}

// IsAutoNote распознаёт автосгенерированное примечание, включая легаси-формат.
func IsAutoNote(text string) bool {
	text = strings.TrimSpace(text)
	return strings.HasPrefix(text, autoNotePrefix) || strings.HasPrefix(text, legacyAutoNotePrefix)
}

func composeNote(paymentTerms, deliveryPeriod string) string {
	paymentTerms = strings.TrimSpace(paymentTerms)
	deliveryPeriod = strings.TrimSpace(deliveryPeriod)
	switch {
	case paymentTerms == "" && deliveryPeriod == "":
		return ""
	case deliveryPeriod == "":
		return autoNotePrefix + paymentTerms
	case paymentTerms == "":
		return fmt.Sprintf("%s—. Срок поставки: %s", autoNotePrefix, deliveryPeriod)
	default:
		return fmt.Sprintf("%s%s. Срок поставки: %s", autoNotePrefix, paymentTerms, deliveryPeriod)
	}
}
