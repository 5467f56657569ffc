package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"awards/internal/award"
)

// GetNoteHandler возвращает примечание к паре позиция/поставщик.
// Пустое или автосгенерированное примечание заполняется из условий
// оплаты и срока поставки котировки; человеческий текст не трогаем.
func (h *Handler) GetNoteHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, ok := pathID(w, r, "tenderId")
	if !ok {
		return
	}
	lineItemID, ok := pathID(w, r, "lineItemId")
	if !ok {
		return
	}
	supplierID, ok := pathID(w, r, "supplierId")
	if !ok {
		return
	}

	note, err := h.Store.GetNote(r.Context(), lineItemID, supplierID)
	if err != nil {
		http.Error(w, "Failed to get note", http.StatusInternalServerError)
		return
	}
	text := ""
	if note != nil {
		text = note.Text
	}

	generated := false
	if sess, err := h.session(r.Context(), tenderID); err == nil {
		if q, ok := sess.Quotation(lineItemID, supplierID); ok {
			text, generated = award.AutoNote(text, q.PaymentTerms, q.DeliveryPeriod)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Text      string `json:"text"`
		Generated bool   `json:"generated"`
	}{Text: text, Generated: generated})
}

// SaveNoteHandler сохраняет примечание. При отказе сохранения прежний
// текст остаётся в силе, клиент получает предупреждение.
func (h *Handler) SaveNoteHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := pathID(w, r, "tenderId"); !ok {
		return
	}
	lineItemID, ok := pathID(w, r, "lineItemId")
	if !ok {
		return
	}
	supplierID, ok := pathID(w, r, "supplierId")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	var input struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	if len(input.Text) > 1000 {
		http.Error(w, "Note text max length 1000", http.StatusBadRequest)
		return
	}

	if err := h.Store.SaveNote(r.Context(), lineItemID, supplierID, input.Text); err != nil {
		http.Error(w, "Failed to save note, previous text kept", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Text string `json:"text"`
	}{Text: input.Text})
}
