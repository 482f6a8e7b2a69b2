package mapping

import (
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/models"
)

func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:   d.ExchangeRateID,
		FromCurrencyCode: d.FromCurrencyCode,
		ToCurrencyCode:   d.ToCurrencyCode,
		Rate:             d.Rate,
		RateDate:         d.RateDate,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:   m.ExchangeRateID,
		FromCurrencyCode: m.FromCurrencyCode,
		ToCurrencyCode:   m.ToCurrencyCode,
		Rate:             m.Rate,
		RateDate:         m.RateDate,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}

func ToModelUserExchangeRate(d domain.UserExchangeRate) models.UserExchangeRate {
	return models.UserExchangeRate{
		UserExchangeRateID: d.UserExchangeRateID,
		UserID:             d.UserID,
		FromCurrencyCode:   d.FromCurrencyCode,
		ToCurrencyCode:     d.ToCurrencyCode,
		Rate:               d.Rate,
		RateDate:           d.RateDate,
		IsActive:           d.IsActive,
		Note:               d.Note,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainUserExchangeRate(m models.UserExchangeRate) domain.UserExchangeRate {
	return domain.UserExchangeRate{
		UserExchangeRateID: m.UserExchangeRateID,
		UserID:             m.UserID,
		FromCurrencyCode:   m.FromCurrencyCode,
		ToCurrencyCode:     m.ToCurrencyCode,
		Rate:               m.Rate,
		RateDate:           m.RateDate,
		IsActive:           m.IsActive,
		Note:               m.Note,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainUserExchangeRateSlice(ms []models.UserExchangeRate) []domain.UserExchangeRate {
	ds := make([]domain.UserExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUserExchangeRate(m)
	}
	return ds
}
