package dto

import (
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to move funds between two
// accounts of the same user. Amount is denominated in the source account's
// currency. UserExchangeRateID pins the conversion to one of the caller's own
// saved rates; ExchangeRate supplies a raw rate instead. When both are omitted
// the rate is resolved from the user's overrides and the platform table for
// the transfer date.
type CreateTransferRequest struct {
	SourceAccountID      string           `json:"sourceAccountID" binding:"required"`
	DestinationAccountID string           `json:"destinationAccountID" binding:"required"`
	Amount               decimal.Decimal  `json:"amount" binding:"required"`
	UserExchangeRateID   *string          `json:"userExchangeRateID"`
	ExchangeRate         *decimal.Decimal `json:"exchangeRate"`
	TransferDate         time.Time        `json:"transferDate" binding:"required"`
	Description          string           `json:"description"`
	// AllowNegative permits the source account balance to go below zero.
	AllowNegative bool `json:"allowNegative"`
}

// TransferResponse defines the data returned for a transfer.
type TransferResponse struct {
	TransferID               string                `json:"transferID"`
	SourceAccountID          string                `json:"sourceAccountID"`
	DestinationAccountID     string                `json:"destinationAccountID"`
	Amount                   decimal.Decimal       `json:"amount"`
	SourceCurrencyCode       string                `json:"sourceCurrencyCode"`
	DestinationCurrencyCode  string                `json:"destinationCurrencyCode"`
	ExchangeRate             decimal.Decimal       `json:"exchangeRate"`
	BaseCurrencyAmount       decimal.Decimal       `json:"baseCurrencyAmount"`
	TransferDate             time.Time             `json:"transferDate"`
	Description              string                `json:"description"`
	Status                   domain.TransferStatus `json:"status"`
	RateSource               domain.RateSource     `json:"rateSource"`
	UserExchangeRateID       *string               `json:"userExchangeRateID,omitempty"`
	SourceTransactionID      *string               `json:"sourceTransactionID,omitempty"`
	DestinationTransactionID *string               `json:"destinationTransactionID,omitempty"`
	CreatedAt                time.Time             `json:"createdAt"`
	CreatedBy                string                `json:"createdBy"`
}

// ListTransfersResponse wraps a page of transfers with the pagination token.
type ListTransfersResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// ToTransferResponse converts a domain.Transfer to TransferResponse DTO.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID:               t.TransferID,
		SourceAccountID:          t.SourceAccountID,
		DestinationAccountID:     t.DestinationAccountID,
		Amount:                   t.Amount,
		SourceCurrencyCode:       t.SourceCurrencyCode,
		DestinationCurrencyCode:  t.DestinationCurrencyCode,
		ExchangeRate:             t.ExchangeRate,
		BaseCurrencyAmount:       t.BaseCurrencyAmount,
		TransferDate:             t.TransferDate,
		Description:              t.Description,
		Status:                   t.Status,
		RateSource:               t.RateSource,
		UserExchangeRateID:       t.UserExchangeRateID,
		SourceTransactionID:      t.SourceTransactionID,
		DestinationTransactionID: t.DestinationTransactionID,
		CreatedAt:                t.CreatedAt,
		CreatedBy:                t.CreatedBy,
	}
}

// ToTransferResponses converts a slice of domain.Transfer to []TransferResponse.
func ToTransferResponses(transfers []domain.Transfer) []TransferResponse {
	responses := make([]TransferResponse, len(transfers))
	for i, t := range transfers {
		responses[i] = ToTransferResponse(&t)
	}
	return responses
}
