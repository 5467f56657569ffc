package award

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"awards/models"
)

// Состояние позиции внутри сессии присуждения
type ItemState string

const (
	StateComputed        ItemState = "Computed"
	StateOverridePending ItemState = "OverridePending"
	StateCommitted       ItemState = "Committed"
	StateRolledBack      ItemState = "RolledBack"
)

var (
	ErrOverridePending = errors.New("override already pending for this line item")
	ErrUnknownLineItem = errors.New("unknown line item")
)

// Persister — контракт с удалённой системой учёта. Сессия не знает,
// что за ним стоит (БД, внешний сервис), и не управляет его таймаутами.
type Persister interface {
	CommitWinner(ctx context.Context, tenderID, lineItemID, supplierID int) error
	UpsertAllocations(ctx context.Context, allocations []models.DeliveryAllocation) error
	DeleteAllocations(ctx context.Context, lineItemIDs []int, supplierID int) error
}

// Session держит состояние присуждения одного тендера в памяти и применяет
// ручной выбор победителя оптимистично: локально сразу, в систему учёта —
// асинхронно, с откатом всей сессии при отказе сохранения.
// Сессия не разделяется между тендерами; всё её изменяемое состояние
// защищено одним мьютексом.
type Session struct {
	mu        sync.Mutex
	tenderID  int
	items     []models.TenderLineItem
	quotes    map[int][]models.SupplierQuotation
	overrides Overrides
	results   map[int]Result
	states    map[int]ItemState
	summary   Summary
	persister Persister

	// Сквозной номер выбора и последний номер по каждой позиции:
	// по ним откат отличает позиции, переопределённые уже после снимка
	overrideSeq  uint64
	lastOverride map[int]uint64
}

// Снимок перед мутацией: результаты всей сессии и номер выбора,
// под который он взят. Откат идёт по всей сессии, потому что итог
// агрегирует все позиции, но результаты выборов, применённых позже
// снимка, при восстановлении сохраняются.
type snapshot struct {
	results map[int]Result
	seq     uint64
}

// NewSession загружает состояние присуждения: считает результат каждой
// позиции, применяя ранее зафиксированные ручные выборы (committed:
// lineItemID -> supplierID) и сохранённые распределения доставки.
func NewSession(tenderID int, items []models.TenderLineItem, quotes map[int][]models.SupplierQuotation, allocations []models.DeliveryAllocation, committed map[int]int, p Persister) *Session {
	overrides := make(Overrides, len(allocations))
	for _, a := range allocations {
		overrides[AllocationKey{LineItemID: a.LineItemID, SupplierID: a.SupplierID}] = a.Amount
	}

	s := &Session{
		tenderID:     tenderID,
		items:        items,
		quotes:       quotes,
		overrides:    overrides,
		results:      make(map[int]Result, len(items)),
		states:       make(map[int]ItemState, len(items)),
		persister:    p,
		lastOverride: make(map[int]uint64, len(items)),
	}

	for _, item := range items {
		s.states[item.ID] = StateComputed
		if supplierID, ok := committed[item.ID]; ok {
			if res, err := ResolveWithManualWinner(item, quotes[item.ID], supplierID, overrides); err == nil {
				s.results[item.ID] = res
				s.states[item.ID] = StateCommitted
				continue
			}
			// Зафиксированный поставщик больше не имеет котировки — пересчитываем по цене
		}
		s.results[item.ID] = Resolve(item, quotes[item.ID], overrides)
	}
	s.summary = Aggregate(s.resultsLocked())
	return s
}

// OverrideWinner применяет ручной выбор победителя по позиции.
// Локальное состояние меняется немедленно, сохранение уходит в фоне;
// канал done сообщает исход. Пока выбор по позиции не подтверждён,
// повторный выбор по ней же отклоняется (ErrOverridePending); выборы по
// разным позициям независимы и могут идти одновременно.
func (s *Session) OverrideWinner(ctx context.Context, lineItemID, supplierID int) (Result, <-chan error, error) {
	s.mu.Lock()

	state, ok := s.states[lineItemID]
	if !ok {
		s.mu.Unlock()
		return Result{}, nil, ErrUnknownLineItem
	}
	if state == StateOverridePending {
		s.mu.Unlock()
		return Result{}, nil, ErrOverridePending
	}

	item := s.itemLocked(lineItemID)
	res, err := ResolveWithManualWinner(*item, s.quotes[lineItemID], supplierID, s.overrides)
	if err != nil {
		s.mu.Unlock()
		return Result{}, nil, err
	}

	// Свой снимок на каждый выбор, до применения мутации
	s.overrideSeq++
	snap := s.snapshotLocked()
	s.lastOverride[lineItemID] = s.overrideSeq
	s.results[lineItemID] = res
	s.states[lineItemID] = StateOverridePending
	s.summary = Aggregate(s.resultsLocked())
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		err := s.persister.CommitWinner(ctx, s.tenderID, lineItemID, supplierID)
		s.mu.Lock()
		if err != nil {
			s.restoreLocked(snap)
			s.states[lineItemID] = StateRolledBack
		} else {
			s.states[lineItemID] = StateCommitted
		}
		s.mu.Unlock()
		if err != nil {
			done <- fmt.Errorf("commit winner for line item %d: %w", lineItemID, err)
		} else {
			done <- nil
		}
	}()

	return res, done, nil
}

// DeliverySplitOffer готовит предложение распределения доставки поставщика
// по выигранным им позициям. Предлагается только при заявленной стоимости
// доставки и более чем одной выигранной позиции; подтверждение — отдельный
// шаг (AcceptSplit), а не условие применения выбора победителя.
func (s *Session) DeliverySplitOffer(supplierID int) (map[int]float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, declared := s.wonLinesLocked(supplierID)
	if declared <= 0 || len(lines) < 2 {
		return nil, false
	}
	return ProposeSplit(declared, lines), true
}

// AcceptSplit сохраняет подтверждённое распределение доставки и пересчитывает
// сессию. Сначала снимаются прежние распределения поставщика (чтобы не
// осталось осиротевших записей по позициям, которые он больше не выигрывает),
// затем сохраняются новые. При отказе сохранения локальное состояние
// не меняется.
func (s *Session) AcceptSplit(ctx context.Context, supplierID int, split map[int]float64) error {
	s.mu.Lock()
	var stale []int
	for key := range s.overrides {
		if key.SupplierID == supplierID {
			stale = append(stale, key.LineItemID)
		}
	}
	s.mu.Unlock()

	if len(stale) > 0 {
		if err := s.persister.DeleteAllocations(ctx, stale, supplierID); err != nil {
			return fmt.Errorf("clear delivery allocations: %w", err)
		}
	}

	allocations := make([]models.DeliveryAllocation, 0, len(split))
	for lineItemID, amount := range split {
		allocations = append(allocations, models.DeliveryAllocation{
			LineItemID: lineItemID,
			SupplierID: supplierID,
			Amount:     amount,
		})
	}
	if err := s.persister.UpsertAllocations(ctx, allocations); err != nil {
		return fmt.Errorf("persist delivery allocations: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lineItemID := range stale {
		delete(s.overrides, AllocationKey{LineItemID: lineItemID, SupplierID: supplierID})
	}
	for lineItemID, amount := range split {
		s.overrides[AllocationKey{LineItemID: lineItemID, SupplierID: supplierID}] = amount
	}
	s.recomputeLocked()
	return nil
}

// CheckAllocationBalance сверяет сумму распределений поставщика по выигранным
// позициям с заявленной стоимостью доставки. Расхождение — предупреждение.
func (s *Session) CheckAllocationBalance(supplierID int) (diff float64, balanced bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, declared := s.wonLinesLocked(supplierID)
	allocations := make(map[int]float64, len(lines))
	for _, lineItemID := range lines {
		if amount, ok := s.overrides[AllocationKey{LineItemID: lineItemID, SupplierID: supplierID}]; ok {
			allocations[lineItemID] = amount
		}
	}
	return CheckBalance(declared, allocations)
}

// Results возвращает результаты в порядке позиций тендера.
func (s *Session) Results() []Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Result, len(s.items))
	for i, item := range s.items {
		out[i] = cloneResult(s.results[item.ID])
	}
	return out
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *Session) State(lineItemID int) ItemState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[lineItemID]
}

// WinnerPairs отдаёт текущий набор победителей для создания контракта.
func (s *Session) WinnerPairs() []WinnerPair {
	s.mu.Lock()
	defer s.mu.Unlock()

	pairs := make([]WinnerPair, 0, len(s.items))
	for _, item := range s.items {
		res := s.results[item.ID]
		if res.Winner == nil {
			continue
		}
		pairs = append(pairs, WinnerPair{LineItemID: item.ID, SupplierID: res.Winner.Quotation.SupplierID})
	}
	return pairs
}

// Quotation находит котировку поставщика по позиции (для примечаний).
func (s *Session) Quotation(lineItemID, supplierID int) (models.SupplierQuotation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.quotes[lineItemID] {
		if q.SupplierID == supplierID {
			return q, true
		}
	}
	return models.SupplierQuotation{}, false
}

func (s *Session) itemLocked(lineItemID int) *models.TenderLineItem {
	for i := range s.items {
		if s.items[i].ID == lineItemID {
			return &s.items[i]
		}
	}
	return nil
}

func (s *Session) wonLinesLocked(supplierID int) (lines []int, declared float64) {
	for _, item := range s.items {
		res := s.results[item.ID]
		if res.Winner == nil || res.Winner.Quotation.SupplierID != supplierID {
			continue
		}
		lines = append(lines, item.ID)
		if declared == 0 {
			declared = res.Winner.Quotation.DeliveryCost
		}
	}
	return lines, declared
}

func (s *Session) resultsLocked() []Result {
	out := make([]Result, len(s.items))
	for i, item := range s.items {
		out[i] = s.results[item.ID]
	}
	return out
}

// recomputeLocked перерешивает каждую позицию по текущим переопределениям
// доставки, сохраняя ручные выборы, и собирает итог заново.
func (s *Session) recomputeLocked() {
	for _, item := range s.items {
		prev := s.results[item.ID]
		if prev.Manual && prev.Winner != nil {
			if res, err := ResolveWithManualWinner(item, s.quotes[item.ID], prev.Winner.Quotation.SupplierID, s.overrides); err == nil {
				s.results[item.ID] = res
				continue
			}
		}
		s.results[item.ID] = Resolve(item, s.quotes[item.ID], s.overrides)
	}
	s.summary = Aggregate(s.resultsLocked())
}

func (s *Session) snapshotLocked() snapshot {
	results := make(map[int]Result, len(s.results))
	for id, res := range s.results {
		results[id] = cloneResult(res)
	}
	return snapshot{results: results, seq: s.overrideSeq}
}

// restoreLocked возвращает позиции к снимку, кроме переопределённых уже
// после него: их оптимистичные и подтверждённые результаты чужой откат
// не трогает, иначе сессия разойдётся с записью в системе учёта.
// Итог собирается заново из получившегося набора. Состояния позиций
// тоже не трогаем: флаг ожидания по другой позиции не должен
// сбрасываться чужим откатом.
func (s *Session) restoreLocked(snap snapshot) {
	for id, res := range snap.results {
		if s.lastOverride[id] > snap.seq {
			continue
		}
		s.results[id] = res
	}
	s.summary = Aggregate(s.resultsLocked())
}

func cloneResult(r Result) Result {
	if r.Winner != nil {
		w := *r.Winner
		r.Winner = &w
	}
	if r.RunnerUp != nil {
		ru := *r.RunnerUp
		r.RunnerUp = &ru
	}
	return r
}
