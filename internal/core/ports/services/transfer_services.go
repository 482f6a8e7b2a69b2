package services

import (
	"context"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/dto"
)

// ListTransfersParams holds pagination parameters for listing transfers.
type ListTransfersParams struct {
	Limit     int
	NextToken *string
}

// ListTransfersResult holds a page of transfers and the token for the next page.
type ListTransfersResult struct {
	Transfers []domain.Transfer
	NextToken *string
}

// TransferReaderSvc defines read operations for transfer data
type TransferReaderSvc interface {
	// GetTransferByID retrieves a transfer owned by the user.
	GetTransferByID(ctx context.Context, userID, transferID string) (*domain.Transfer, error)

	// ListTransfers retrieves a page of the user's transfers, newest first.
	ListTransfers(ctx context.Context, userID string, params ListTransfersParams) (*ListTransfersResult, error)
}

// TransferWriterSvc defines write operations for transfer data
type TransferWriterSvc interface {
	// CreateTransfer moves funds between two accounts of the user: the
	// transfer row, both linked transactions and both balance updates commit
	// or abort as one unit.
	CreateTransfer(ctx context.Context, userID string, req dto.CreateTransferRequest) (*domain.Transfer, error)

	// CancelTransfer reverses a COMPLETED transfer. The reversal may push
	// either balance below zero; cancellation is terminal.
	CancelTransfer(ctx context.Context, userID, transferID string) (*domain.Transfer, error)
}

// TransferSvcFacade combines all transfer-related service interfaces
type TransferSvcFacade interface {
	TransferReaderSvc
	TransferWriterSvc
}
