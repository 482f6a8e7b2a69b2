package dto

import (
	"time"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpsertExchangeRateRequest defines the structure for creating or replacing a
// platform exchange rate for a (from, to, date) key.
type UpsertExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	RateDate         time.Time       `json:"rateDate" binding:"required"`
}

// CreateUserExchangeRateRequest defines the structure for creating a per-user
// override rate. Saving one deactivates any previous active override for the
// same pair and date.
type CreateUserExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,len=3,uppercase"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,len=3,uppercase"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	RateDate         time.Time       `json:"rateDate" binding:"required"`
	Note             string          `json:"note"`
}

// ExchangeRateResponse defines the structure for API responses containing platform rate details.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	RateDate         time.Time       `json:"rateDate"`
	CreatedAt        time.Time       `json:"createdAt"`
	CreatedBy        string          `json:"createdBy"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy    string          `json:"lastUpdatedBy"`
}

// UserExchangeRateResponse defines the structure for API responses containing override rate details.
type UserExchangeRateResponse struct {
	UserExchangeRateID string          `json:"userExchangeRateID"`
	FromCurrencyCode   string          `json:"fromCurrencyCode"`
	ToCurrencyCode     string          `json:"toCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	RateDate           time.Time       `json:"rateDate"`
	IsActive           bool            `json:"isActive"`
	Note               string          `json:"note,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// ResolvedRateResponse reports which rate applies for a pair and date, and
// whether it came from a user override or the platform table.
type ResolvedRateResponse struct {
	FromCurrencyCode   string            `json:"fromCurrencyCode"`
	ToCurrencyCode     string            `json:"toCurrencyCode"`
	Rate               decimal.Decimal   `json:"rate"`
	Source             domain.RateSource `json:"source"`
	UserExchangeRateID *string           `json:"userExchangeRateID,omitempty"`
	RateDate           time.Time         `json:"rateDate"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		RateDate:         rate.RateDate,
		CreatedAt:        rate.CreatedAt,
		CreatedBy:        rate.CreatedBy,
		LastUpdatedAt:    rate.LastUpdatedAt,
		LastUpdatedBy:    rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToExchangeRateResponse(&rate)
	}
	return responses
}

// ToUserExchangeRateResponse converts a domain.UserExchangeRate to UserExchangeRateResponse DTO
func ToUserExchangeRateResponse(rate *domain.UserExchangeRate) UserExchangeRateResponse {
	return UserExchangeRateResponse{
		UserExchangeRateID: rate.UserExchangeRateID,
		FromCurrencyCode:   rate.FromCurrencyCode,
		ToCurrencyCode:     rate.ToCurrencyCode,
		Rate:               rate.Rate,
		RateDate:           rate.RateDate,
		IsActive:           rate.IsActive,
		Note:               rate.Note,
		CreatedAt:          rate.CreatedAt,
		CreatedBy:          rate.CreatedBy,
		LastUpdatedAt:      rate.LastUpdatedAt,
		LastUpdatedBy:      rate.LastUpdatedBy,
	}
}

// ToListUserExchangeRateResponse converts a slice of domain.UserExchangeRate to response DTOs.
func ToListUserExchangeRateResponse(rates []domain.UserExchangeRate) []UserExchangeRateResponse {
	responses := make([]UserExchangeRateResponse, len(rates))
	for i, rate := range rates {
		responses[i] = ToUserExchangeRateResponse(&rate)
	}
	return responses
}

// ToResolvedRateResponse converts a domain.ResolvedRate to ResolvedRateResponse DTO
func ToResolvedRateResponse(fromCode, toCode string, resolved *domain.ResolvedRate) ResolvedRateResponse {
	return ResolvedRateResponse{
		FromCurrencyCode:   fromCode,
		ToCurrencyCode:     toCode,
		Rate:               resolved.Rate,
		Source:             resolved.Source,
		UserExchangeRateID: resolved.UserExchangeRateID,
		RateDate:           resolved.RateDate,
	}
}
