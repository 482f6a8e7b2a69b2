package domain

import "github.com/shopspring/decimal"

// TransactionSummary holds base-currency totals for a user over a date range.
type TransactionSummary struct {
	TotalIncome  decimal.Decimal
	TotalExpense decimal.Decimal
	NetAmount    decimal.Decimal
	Count        int64
}
