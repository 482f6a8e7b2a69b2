package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/KwakuBoohene/ackontant/internal/core/domain"
)

func TestBalanceChange_Inverse(t *testing.T) {
	tests := []struct {
		name            string
		change          domain.BalanceChange
		allowNegative   bool
		wantNativeDelta string
		wantBaseDelta   string
	}{
		{
			name: "debit inverts to credit",
			change: domain.BalanceChange{
				AccountID:   "acc_1",
				NativeDelta: decimal.RequireFromString("-150.00"),
				BaseDelta:   decimal.RequireFromString("-150.00"),
			},
			allowNegative:   true,
			wantNativeDelta: "150.00",
			wantBaseDelta:   "150.00",
		},
		{
			name: "credit inverts to debit",
			change: domain.BalanceChange{
				AccountID:   "acc_1",
				NativeDelta: decimal.RequireFromString("33.34"),
				BaseDelta:   decimal.RequireFromString("491.13"),
			},
			allowNegative:   false,
			wantNativeDelta: "-33.34",
			wantBaseDelta:   "-491.13",
		},
		{
			name: "zero stays zero",
			change: domain.BalanceChange{
				AccountID:   "acc_1",
				NativeDelta: decimal.Zero,
				BaseDelta:   decimal.Zero,
			},
			allowNegative:   false,
			wantNativeDelta: "0",
			wantBaseDelta:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.change.Inverse(tt.allowNegative)
			assert.Equal(t, tt.change.AccountID, got.AccountID)
			assert.True(t, got.NativeDelta.Equal(decimal.RequireFromString(tt.wantNativeDelta)))
			assert.True(t, got.BaseDelta.Equal(decimal.RequireFromString(tt.wantBaseDelta)))
			assert.Equal(t, tt.allowNegative, got.AllowNegative)
		})
	}
}

func TestBalanceChange_InverseRoundTrip(t *testing.T) {
	rate := decimal.RequireFromString("14.731")
	convDate := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	change := domain.BalanceChange{
		AccountID:          "acc_1",
		NativeDelta:        decimal.RequireFromString("-491.13"),
		BaseDelta:          decimal.RequireFromString("-491.13"),
		LastExchangeRate:   &rate,
		LastConversionDate: &convDate,
	}

	inverse := change.Inverse(true)

	// Applying the change and its inverse nets out to zero exactly.
	assert.True(t, change.NativeDelta.Add(inverse.NativeDelta).IsZero())
	assert.True(t, change.BaseDelta.Add(inverse.BaseDelta).IsZero())

	// The conversion cache fields carry over unchanged.
	assert.Equal(t, change.LastExchangeRate, inverse.LastExchangeRate)
	assert.Equal(t, change.LastConversionDate, inverse.LastConversionDate)
}
