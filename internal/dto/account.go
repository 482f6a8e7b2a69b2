package dto

import (
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=BANK CASH MOBILE CREDIT OTHER"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,uppercase,len=3"`
	InitialBalance decimal.Decimal    `json:"initialBalance"` // Optional, defaults to zero
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
// Currency and initial balance are fixed at creation.
type UpdateAccountRequest struct {
	Name        *string             `json:"name"`
	AccountType *domain.AccountType `json:"accountType"`
	IsActive    *bool               `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID           string             `json:"accountID"`
	Name                string             `json:"name"`
	AccountType         domain.AccountType `json:"accountType"`
	CurrencyCode        string             `json:"currencyCode"`
	InitialBalance      decimal.Decimal    `json:"initialBalance"`
	CurrentBalance      decimal.Decimal    `json:"currentBalance"`
	BaseCurrencyBalance decimal.Decimal    `json:"baseCurrencyBalance"`
	LastExchangeRate    *decimal.Decimal   `json:"lastExchangeRate,omitempty"`
	LastConversionDate  *time.Time         `json:"lastConversionDate,omitempty"`
	IsActive            bool               `json:"isActive"`
	CreatedAt           time.Time          `json:"createdAt"`
	CreatedBy           string             `json:"createdBy"`
	LastUpdatedAt       time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy       string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           acc.AccountID,
		Name:                acc.Name,
		AccountType:         acc.AccountType,
		CurrencyCode:        acc.CurrencyCode,
		InitialBalance:      acc.InitialBalance,
		CurrentBalance:      acc.CurrentBalance,
		BaseCurrencyBalance: acc.BaseCurrencyBalance,
		LastExchangeRate:    acc.LastExchangeRate,
		LastConversionDate:  acc.LastConversionDate,
		IsActive:            acc.IsActive,
		CreatedAt:           acc.CreatedAt,
		CreatedBy:           acc.CreatedBy,
		LastUpdatedAt:       acc.LastUpdatedAt,
		LastUpdatedBy:       acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc) // Reuse the single converter
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
