package mapping

import (
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/models"
)

func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:               d.TransferID,
		UserID:                   d.UserID,
		SourceAccountID:          d.SourceAccountID,
		DestinationAccountID:     d.DestinationAccountID,
		Amount:                   d.Amount,
		SourceCurrencyCode:       d.SourceCurrencyCode,
		DestinationCurrencyCode:  d.DestinationCurrencyCode,
		ExchangeRate:             d.ExchangeRate,
		BaseCurrencyAmount:       d.BaseCurrencyAmount,
		TransferDate:             d.TransferDate,
		Description:              d.Description,
		Status:                   models.TransferStatus(d.Status),
		RateSource:               string(d.RateSource),
		UserExchangeRateID:       d.UserExchangeRateID,
		SourceTransactionID:      d.SourceTransactionID,
		DestinationTransactionID: d.DestinationTransactionID,
		AuditFields:              ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		TransferID:               m.TransferID,
		UserID:                   m.UserID,
		SourceAccountID:          m.SourceAccountID,
		DestinationAccountID:     m.DestinationAccountID,
		Amount:                   m.Amount,
		SourceCurrencyCode:       m.SourceCurrencyCode,
		DestinationCurrencyCode:  m.DestinationCurrencyCode,
		ExchangeRate:             m.ExchangeRate,
		BaseCurrencyAmount:       m.BaseCurrencyAmount,
		TransferDate:             m.TransferDate,
		Description:              m.Description,
		Status:                   domain.TransferStatus(m.Status),
		RateSource:               domain.RateSource(m.RateSource),
		UserExchangeRateID:       m.UserExchangeRateID,
		SourceTransactionID:      m.SourceTransactionID,
		DestinationTransactionID: m.DestinationTransactionID,
		AuditFields:              ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainTransferSlice(ms []models.Transfer) []domain.Transfer {
	ds := make([]domain.Transfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}
