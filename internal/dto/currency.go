package dto

import (
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode  string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol        string `json:"symbol" binding:"required"`
	Name          string `json:"name" binding:"required"`
	DecimalPlaces *int16 `json:"decimalPlaces"` // Optional, defaults to 2
}

// UpdateCurrencyRequest defines the data allowed for updating a currency.
// Only display fields may change after creation.
type UpdateCurrencyRequest struct {
	Name   *string `json:"name"`
	Symbol *string `json:"symbol"`
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode       string    `json:"currencyCode"`
	Symbol             string    `json:"symbol"`
	Name               string    `json:"name"`
	DecimalPlaces      int16     `json:"decimalPlaces"`
	IsActive           bool      `json:"isActive"`
	IsPlatformCurrency bool      `json:"isPlatformCurrency"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          string    `json:"createdBy"`
	LastUpdatedAt      time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy      string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:       curr.CurrencyCode,
		Symbol:             curr.Symbol,
		Name:               curr.Name,
		DecimalPlaces:      curr.DecimalPlaces,
		IsActive:           curr.IsActive,
		IsPlatformCurrency: curr.IsPlatformCurrency,
		CreatedAt:          curr.CreatedAt,
		CreatedBy:          curr.CreatedBy,
		LastUpdatedAt:      curr.LastUpdatedAt,
		LastUpdatedBy:      curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(&curr) // Reuse the single converter
	}
	return res
}
