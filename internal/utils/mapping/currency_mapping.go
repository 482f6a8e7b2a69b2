package mapping

import (
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/models"
)

func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		CurrencyCode:       d.CurrencyCode,
		Name:               d.Name,
		Symbol:             d.Symbol,
		DecimalPlaces:      d.DecimalPlaces,
		IsActive:           d.IsActive,
		IsPlatformCurrency: d.IsPlatformCurrency,
		Source:             string(d.Source),
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		CurrencyCode:       m.CurrencyCode,
		Name:               m.Name,
		Symbol:             m.Symbol,
		DecimalPlaces:      m.DecimalPlaces,
		IsActive:           m.IsActive,
		IsPlatformCurrency: m.IsPlatformCurrency,
		Source:             domain.CurrencySource(m.Source),
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
