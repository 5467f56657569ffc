package models

import "time"

// Сущность Тендера
type Tender struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name" validate:"required,max=100"`
	Description string    `db:"description" json:"description" validate:"max=500"`
	Status      string    `db:"status" json:"status" validate:"required,oneof=Created Published Awarded Closed"`
	Currency    string    `db:"currency" json:"currency"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// Сущность Позиции тендера
type TenderLineItem struct {
	ID                 int       `db:"id" json:"id"`
	TenderID           int       `db:"tender_id" json:"tenderId" validate:"required"`
	Ordinal            int       `db:"ordinal" json:"ordinal"`
	Description        string    `db:"description" json:"description" validate:"required,max=500"`
	Quantity           float64   `db:"quantity" json:"quantity" validate:"required"`
	Unit               string    `db:"unit" json:"unit"`
	EstimatedUnitPrice float64   `db:"estimated_unit_price" json:"estimatedUnitPrice"`
	CreatedAt          time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Котировки поставщика по позиции
type SupplierQuotation struct {
	ID               int       `db:"id" json:"id"`
	LineItemID       int       `db:"line_item_id" json:"lineItemId" validate:"required"`
	SupplierID       int       `db:"supplier_id" json:"supplierId" validate:"required"`
	ProposalID       int       `db:"proposal_id" json:"proposalId"`
	Currency         string    `db:"currency" json:"currency"`
	UnitPrice        float64   `db:"unit_price" json:"unitPrice"`
	UnitPriceWithVat float64   `db:"unit_price_with_vat" json:"unitPriceWithVat"`
	VatRate          float64   `db:"vat_rate" json:"vatRate"`
	DeliveryCost     float64   `db:"delivery_cost" json:"deliveryCost"`
	DeliveryPeriod   string    `db:"delivery_period" json:"deliveryPeriod"`
	Warranty         string    `db:"warranty" json:"warranty"`
	PaymentTerms     string    `db:"payment_terms" json:"paymentTerms"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Распределения стоимости доставки
type DeliveryAllocation struct {
	ID         int       `db:"id" json:"id"`
	LineItemID int       `db:"line_item_id" json:"lineItemId" validate:"required"`
	SupplierID int       `db:"supplier_id" json:"supplierId" validate:"required"`
	Amount     float64   `db:"amount" json:"amount"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"-"`
}

// Сущность Победителя по позиции (зафиксированный ручной выбор)
type LineItemWinner struct {
	ID         int       `db:"id" json:"id"`
	LineItemID int       `db:"line_item_id" json:"lineItemId"`
	SupplierID int       `db:"supplier_id" json:"supplierId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// Сущность Примечания к паре позиция/поставщик
type LineItemNote struct {
	ID         int       `db:"id" json:"id"`
	LineItemID int       `db:"line_item_id" json:"lineItemId"`
	SupplierID int       `db:"supplier_id" json:"supplierId"`
	Text       string    `db:"text" json:"text" validate:"max=1000"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" json:"-"`
}

// Сущность Поставщика (из БД, для связи)
type Supplier struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Inn       string    `db:"inn" json:"inn"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}
