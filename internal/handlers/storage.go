package handlers

import (
	"context"

	"awards/models"
)

type StorageInterface interface {
	GetTender(ctx context.Context, tenderID int) (*models.Tender, error)
	GetLineItems(ctx context.Context, tenderID int) ([]models.TenderLineItem, error)
	GetQuotations(ctx context.Context, tenderID int) ([]models.SupplierQuotation, error)
	GetLineItemWinners(ctx context.Context, tenderID int) ([]models.LineItemWinner, error)

	GetAllocations(ctx context.Context, lineItemIDs []int) ([]models.DeliveryAllocation, error)

	GetNote(ctx context.Context, lineItemID, supplierID int) (*models.LineItemNote, error)
	SaveNote(ctx context.Context, lineItemID, supplierID int, text string) error

	// Контракт award.Persister: фиксация победителя и распределений доставки
	CommitWinner(ctx context.Context, tenderID, lineItemID, supplierID int) error
	UpsertAllocations(ctx context.Context, allocations []models.DeliveryAllocation) error
	DeleteAllocations(ctx context.Context, lineItemIDs []int, supplierID int) error
}
