package mapping

import (
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/models"
)

func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:           d.AccountID,
		UserID:              d.UserID,
		Name:                d.Name,
		AccountType:         models.AccountType(d.AccountType),
		CurrencyCode:        d.CurrencyCode,
		InitialBalance:      d.InitialBalance,
		CurrentBalance:      d.CurrentBalance,
		BaseCurrencyBalance: d.BaseCurrencyBalance,
		LastExchangeRate:    d.LastExchangeRate,
		LastConversionDate:  d.LastConversionDate,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		UserID:              m.UserID,
		Name:                m.Name,
		AccountType:         domain.AccountType(m.AccountType),
		CurrencyCode:        m.CurrencyCode,
		InitialBalance:      m.InitialBalance,
		CurrentBalance:      m.CurrentBalance,
		BaseCurrencyBalance: m.BaseCurrencyBalance,
		LastExchangeRate:    m.LastExchangeRate,
		LastConversionDate:  m.LastConversionDate,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
