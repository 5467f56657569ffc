package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"awards/internal/award"

	"github.com/go-chi/chi/v5"
)

type awardView struct {
	Results []award.Result          `json:"results"`
	Summary award.Summary           `json:"summary"`
	States  map[int]award.ItemState `json:"states"`
}

// GetAwardHandler возвращает текущее состояние присуждения тендера:
// результаты по всем позициям и итог
func (h *Handler) GetAwardHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, ok := pathID(w, r, "tenderId")
	if !ok {
		return
	}

	sess, ok := h.loadSession(w, r, tenderID)
	if !ok {
		return
	}

	view := awardView{
		Results: sess.Results(),
		Summary: sess.Summary(),
		States:  make(map[int]award.ItemState),
	}
	for _, res := range view.Results {
		view.States[res.Item.ID] = sess.State(res.Item.ID)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

// OverrideWinnerHandler применяет ручной выбор победителя по позиции.
// Локально выбор применяется сразу; при отказе сохранения вся сессия
// откатывается и видимые числа остаются ровно как до попытки.
func (h *Handler) OverrideWinnerHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, ok := pathID(w, r, "tenderId")
	if !ok {
		return
	}
	lineItemID, ok := pathID(w, r, "lineItemId")
	if !ok {
		return
	}

	supplierID, err := strconv.Atoi(r.URL.Query().Get("supplierId"))
	if err != nil || supplierID <= 0 {
		http.Error(w, "Invalid supplierId", http.StatusBadRequest)
		return
	}

	sess, ok := h.loadSession(w, r, tenderID)
	if !ok {
		return
	}

	res, done, err := sess.OverrideWinner(r.Context(), lineItemID, supplierID)
	switch {
	case errors.Is(err, award.ErrOverridePending):
		http.Error(w, "Previous override for this line item is still pending", http.StatusConflict)
		return
	case errors.Is(err, award.ErrUnknownLineItem):
		http.Error(w, "Line item not found", http.StatusNotFound)
		return
	case errors.Is(err, award.ErrUnknownSupplier):
		http.Error(w, "Supplier has no quotation for this line item", http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "Failed to apply override", http.StatusInternalServerError)
		return
	}

	if err := <-done; err != nil {
		http.Error(w, "Failed to save winner, local changes were rolled back", http.StatusBadGateway)
		return
	}

	resp := struct {
		Result             award.Result    `json:"result"`
		Summary            award.Summary   `json:"summary"`
		State              award.ItemState `json:"state"`
		DeliverySplitOffer map[int]float64 `json:"deliverySplitOffer,omitempty"`
	}{
		Result:  res,
		Summary: sess.Summary(),
		State:   sess.State(lineItemID),
	}
	// Побочное предложение, не условие: сплит доставки при нескольких
	// выигранных позициях и заявленной стоимости доставки
	if split, offered := sess.DeliverySplitOffer(supplierID); offered {
		resp.DeliverySplitOffer = split
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// ProposeDeliverySplitHandler возвращает предложение равного распределения
// доставки поставщика по выигранным им позициям
func (h *Handler) ProposeDeliverySplitHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, ok := pathID(w, r, "tenderId")
	if !ok {
		return
	}
	supplierID, ok := pathID(w, r, "supplierId")
	if !ok {
		return
	}

	sess, ok := h.loadSession(w, r, tenderID)
	if !ok {
		return
	}

	split, offered := sess.DeliverySplitOffer(supplierID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Offered bool            `json:"offered"`
		Split   map[int]float64 `json:"split,omitempty"`
	}{Offered: offered, Split: split})
}

// AcceptDeliverySplitHandler сохраняет подтверждённое оператором
// распределение доставки и пересчитывает сессию. Расхождение суммы
// с заявленной стоимостью — предупреждение в ответе, не отказ.
func (h *Handler) AcceptDeliverySplitHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, ok := pathID(w, r, "tenderId")
	if !ok {
		return
	}
	supplierID, ok := pathID(w, r, "supplierId")
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1048576)

	var input struct {
		Split []struct {
			LineItemID int     `json:"lineItemId"`
			Amount     float64 `json:"amount"`
		} `json:"split"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON format", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()
	if len(input.Split) == 0 {
		http.Error(w, "Empty split", http.StatusBadRequest)
		return
	}

	split := make(map[int]float64, len(input.Split))
	for _, s := range input.Split {
		if s.LineItemID <= 0 || s.Amount < 0 {
			http.Error(w, "Invalid split entry", http.StatusBadRequest)
			return
		}
		split[s.LineItemID] = s.Amount
	}

	sess, ok := h.loadSession(w, r, tenderID)
	if !ok {
		return
	}

	if err := sess.AcceptSplit(r.Context(), supplierID, split); err != nil {
		http.Error(w, "Failed to save delivery split", http.StatusBadGateway)
		return
	}

	diff, balanced := sess.CheckAllocationBalance(supplierID)
	resp := struct {
		Summary  award.Summary `json:"summary"`
		Balanced bool          `json:"balanced"`
		Warning  string        `json:"warning,omitempty"`
	}{Summary: sess.Summary(), Balanced: balanced}
	if !balanced {
		resp.Warning = fmt.Sprintf("allocated delivery differs from declared cost by %.2f", diff)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetWinnersHandler отдаёт текущий набор пар позиция/поставщик
// для создания контракта
func (h *Handler) GetWinnersHandler(w http.ResponseWriter, r *http.Request) {
	tenderID, ok := pathID(w, r, "tenderId")
	if !ok {
		return
	}

	sess, ok := h.loadSession(w, r, tenderID)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(struct {
		Winners []award.WinnerPair `json:"winners"`
	}{Winners: sess.WinnerPairs()})
}

// loadSession достаёт сессию тендера и сам отвечает клиенту при ошибке:
// неизвестный тендер — 404, отказ хранилища при загрузке — 500
func (h *Handler) loadSession(w http.ResponseWriter, r *http.Request, tenderID int) (*award.Session, bool) {
	sess, err := h.session(r.Context(), tenderID)
	if errors.Is(err, errTenderNotFound) {
		http.Error(w, "Tender not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, "Failed to load award state", http.StatusInternalServerError)
		return nil, false
	}
	return sess, true
}

// pathID парсит положительный числовой параметр пути
func pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		http.Error(w, "Invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
