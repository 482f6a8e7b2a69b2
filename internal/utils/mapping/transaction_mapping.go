package mapping

import (
	"github.com/KwakuBoohene/ackontant/internal/core/domain"
	"github.com/KwakuBoohene/ackontant/internal/models"
)

// ToModelTransaction maps a domain transaction to its row representation.
// TagIDs live in the transaction_tags join table and are handled by the
// repository, not here.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		UserID:             d.UserID,
		AccountID:          d.AccountID,
		TransactionType:    models.TransactionType(d.TransactionType),
		Amount:             d.Amount,
		CurrencyCode:       d.CurrencyCode,
		BaseCurrencyAmount: d.BaseCurrencyAmount,
		ExchangeRate:       d.ExchangeRate,
		Description:        d.Description,
		TransactionDate:    d.TransactionDate,
		CategoryID:         d.CategoryID,
		TransferID:         d.TransferID,
		IsRecurring:        d.IsRecurring,
		RecurringRule:      d.RecurringRule,
		IsArchived:         d.IsArchived,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		UserID:             m.UserID,
		AccountID:          m.AccountID,
		TransactionType:    domain.TransactionType(m.TransactionType),
		Amount:             m.Amount,
		CurrencyCode:       m.CurrencyCode,
		BaseCurrencyAmount: m.BaseCurrencyAmount,
		ExchangeRate:       m.ExchangeRate,
		Description:        m.Description,
		TransactionDate:    m.TransactionDate,
		CategoryID:         m.CategoryID,
		TransferID:         m.TransferID,
		IsRecurring:        m.IsRecurring,
		RecurringRule:      m.RecurringRule,
		IsArchived:         m.IsArchived,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
