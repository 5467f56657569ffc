package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"awards/models"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Tender (Тендер)

func (s *Storage) GetTender(ctx context.Context, id int) (*models.Tender, error) {
	t := &models.Tender{}
	query := `SELECT * FROM tender WHERE id=$1`
	err := s.db.GetContext(ctx, t, query, id)
	return t, err
}

// TenderLineItem (Позиция тендера)

func (s *Storage) GetLineItems(ctx context.Context, tenderID int) ([]models.TenderLineItem, error) {
	query := `
        SELECT * FROM tender_line_item
        WHERE tender_id = $1
        ORDER BY ordinal ASC, id ASC`
	items := []models.TenderLineItem{}
	err := s.db.SelectContext(ctx, &items, query, tenderID)
	return items, err
}

// SupplierQuotation (Котировка)
// Порядок выдачи фиксирован: от него зависит разрешение ничьих при
// определении победителя.

func (s *Storage) GetQuotations(ctx context.Context, tenderID int) ([]models.SupplierQuotation, error) {
	query := `
        SELECT q.* FROM supplier_quotation q
        JOIN tender_line_item li ON q.line_item_id = li.id
        WHERE li.tender_id = $1
        ORDER BY q.line_item_id ASC, q.id ASC`
	quotations := []models.SupplierQuotation{}
	err := s.db.SelectContext(ctx, &quotations, query, tenderID)
	return quotations, err
}

// LineItemWinner (Зафиксированный победитель)

func (s *Storage) GetLineItemWinners(ctx context.Context, tenderID int) ([]models.LineItemWinner, error) {
	query := `
        SELECT w.* FROM line_item_winner w
        JOIN tender_line_item li ON w.line_item_id = li.id
        WHERE li.tender_id = $1`
	winners := []models.LineItemWinner{}
	err := s.db.SelectContext(ctx, &winners, query, tenderID)
	return winners, err
}

func (s *Storage) CommitWinner(ctx context.Context, tenderID, lineItemID, supplierID int) error {
	query := `
        INSERT INTO line_item_winner (tender_id, line_item_id, supplier_id, created_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (line_item_id) DO UPDATE SET supplier_id = EXCLUDED.supplier_id, created_at = NOW()
    `
	_, err := s.db.ExecContext(ctx, query, tenderID, lineItemID, supplierID)
	return err
}

// DeliveryAllocation (Распределение доставки)

func (s *Storage) GetAllocations(ctx context.Context, lineItemIDs []int) ([]models.DeliveryAllocation, error) {
	if len(lineItemIDs) == 0 {
		return []models.DeliveryAllocation{}, nil
	}

	placeholders := make([]string, len(lineItemIDs))
	args := make([]interface{}, len(lineItemIDs))
	for i, id := range lineItemIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(
		`SELECT * FROM delivery_allocation WHERE line_item_id IN (%s)`,
		strings.Join(placeholders, ", "))

	allocations := []models.DeliveryAllocation{}
	err := s.db.SelectContext(ctx, &allocations, query, args...)
	return allocations, err
}

// UpsertAllocations — идемпотентная запись по ключу (line_item_id, supplier_id)
func (s *Storage) UpsertAllocations(ctx context.Context, allocations []models.DeliveryAllocation) error {
	query := `
        INSERT INTO delivery_allocation (line_item_id, supplier_id, amount)
        VALUES ($1, $2, $3)
        ON CONFLICT (line_item_id, supplier_id) DO UPDATE SET amount = EXCLUDED.amount, updated_at = NOW()
    `
	for _, a := range allocations {
		if _, err := s.db.ExecContext(ctx, query, a.LineItemID, a.SupplierID, a.Amount); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) DeleteAllocations(ctx context.Context, lineItemIDs []int, supplierID int) error {
	if len(lineItemIDs) == 0 {
		return nil
	}

	placeholders := make([]string, len(lineItemIDs))
	args := []interface{}{supplierID}
	for i, id := range lineItemIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, id)
	}
	query := fmt.Sprintf(
		`DELETE FROM delivery_allocation WHERE supplier_id = $1 AND line_item_id IN (%s)`,
		strings.Join(placeholders, ", "))

	_, err := s.db.ExecContext(ctx, query, args...)
	return err
}

// LineItemNote (Примечание)

func (s *Storage) GetNote(ctx context.Context, lineItemID, supplierID int) (*models.LineItemNote, error) {
	n := &models.LineItemNote{}
	query := `SELECT * FROM line_item_note WHERE line_item_id=$1 AND supplier_id=$2`
	err := s.db.GetContext(ctx, n, query, lineItemID, supplierID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Storage) SaveNote(ctx context.Context, lineItemID, supplierID int, text string) error {
	query := `
        INSERT INTO line_item_note (line_item_id, supplier_id, text)
        VALUES ($1, $2, $3)
        ON CONFLICT (line_item_id, supplier_id) DO UPDATE SET text = EXCLUDED.text, updated_at = NOW()
    `
	_, err := s.db.ExecContext(ctx, query, lineItemID, supplierID, text)
	return err
}

// Supplier (Поставщик)

func (s *Storage) GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	sup := &models.Supplier{}
	query := `SELECT * FROM supplier WHERE id=$1`
	err := s.db.GetContext(ctx, sup, query, id)
	return sup, err
}
