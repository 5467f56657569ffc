package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"awards/internal/award"
	"awards/models"
)

var errTenderNotFound = errors.New("tender not found")

// Handler оборачивает Storage и держит живые сессии присуждения
type Handler struct {
	Store StorageInterface

	mu       sync.Mutex
	sessions map[int]*award.Session
}

// NewHandler создает новый Handler
func NewHandler(store StorageInterface) *Handler {
	return &Handler{
		Store:    store,
		sessions: make(map[int]*award.Session),
	}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// session возвращает сессию присуждения тендера, при первом обращении
// загружая её из хранилища. Одна сессия на тендер.
func (h *Handler) session(ctx context.Context, tenderID int) (*award.Session, error) {
	h.mu.Lock()
	if sess, ok := h.sessions[tenderID]; ok {
		h.mu.Unlock()
		return sess, nil
	}
	h.mu.Unlock()

	if _, err := h.Store.GetTender(ctx, tenderID); err != nil {
		return nil, errTenderNotFound
	}

	items, err := h.Store.GetLineItems(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	quotations, err := h.Store.GetQuotations(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	quotes := make(map[int][]models.SupplierQuotation, len(items))
	for _, q := range quotations {
		quotes[q.LineItemID] = append(quotes[q.LineItemID], q)
	}

	lineItemIDs := make([]int, len(items))
	for i, item := range items {
		lineItemIDs[i] = item.ID
	}
	allocations, err := h.Store.GetAllocations(ctx, lineItemIDs)
	if err != nil {
		return nil, err
	}

	winners, err := h.Store.GetLineItemWinners(ctx, tenderID)
	if err != nil {
		return nil, err
	}
	committed := make(map[int]int, len(winners))
	for _, w := range winners {
		committed[w.LineItemID] = w.SupplierID
	}

	sess := award.NewSession(tenderID, items, quotes, allocations, committed, h.Store)

	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.sessions[tenderID]; ok {
		// Параллельный запрос успел первым — используем его сессию
		return existing, nil
	}
	h.sessions[tenderID] = sess
	return sess, nil
}
