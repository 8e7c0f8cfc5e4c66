package accounting

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPayment(t *testing.T) {
	invoiceID := uuid.New()
	date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
	operator, err := UserActor(uuid.New())
	require.NoError(t, err)

	t.Run("creates payment with valid inputs", func(t *testing.T) {
		payment, err := NewPayment(invoiceID, date, decimal.NewFromFloat(250.00), PaymentMethodTransfer, "TRF-8841", "", operator)
		require.NoError(t, err)
		require.NotNil(t, payment)

		assert.Equal(t, invoiceID, payment.InvoiceID)
		assert.Equal(t, PaymentMethodTransfer, payment.Method)
		assert.Equal(t, "TRF-8841", payment.Reference)
		assert.False(t, payment.IsPosted())
		assert.NotEmpty(t, payment.ID)
		assert.Equal(t, 1, payment.GetVersion())
	})

	t.Run("fails with zero amount", func(t *testing.T) {
		_, err := NewPayment(invoiceID, date, decimal.Zero, PaymentMethodCash, "", "", operator)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})

	t.Run("fails with negative amount", func(t *testing.T) {
		_, err := NewPayment(invoiceID, date, decimal.NewFromFloat(-5), PaymentMethodCash, "", "", operator)
		require.Error(t, err)
	})

	t.Run("fails with missing invoice", func(t *testing.T) {
		_, err := NewPayment(uuid.Nil, date, decimal.NewFromFloat(10), PaymentMethodCash, "", "", operator)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires an invoice")
	})

	t.Run("fails with unknown method", func(t *testing.T) {
		_, err := NewPayment(invoiceID, date, decimal.NewFromFloat(10), PaymentMethod("CRYPTO"), "", "", operator)
		require.Error(t, err)
	})

	t.Run("fails with invalid actor", func(t *testing.T) {
		_, err := NewPayment(invoiceID, date, decimal.NewFromFloat(10), PaymentMethodCash, "", "", Actor{})
		require.Error(t, err)
	})
}

func TestPaymentSetLedgerEntry(t *testing.T) {
	payment, err := NewPayment(uuid.New(), time.Now(), decimal.NewFromFloat(10), PaymentMethodCash, "", "", SystemActor())
	require.NoError(t, err)

	entryID := uuid.New()
	payment.SetLedgerEntry(entryID)

	require.NotNil(t, payment.LedgerEntryID)
	assert.Equal(t, entryID, *payment.LedgerEntryID)
	assert.True(t, payment.IsPosted())
	assert.Equal(t, 2, payment.GetVersion())
}

func TestPaymentMethodDestinationAccountCode(t *testing.T) {
	tests := []struct {
		method PaymentMethod
		code   string
	}{
		{PaymentMethodCash, AccountCodeCash},
		{PaymentMethodTransfer, AccountCodeBank},
		{PaymentMethodCheck, AccountCodeBank},
		{PaymentMethodCard, AccountCodeCardClearing},
		{PaymentMethodOther, AccountCodeCash},
	}

	for _, tt := range tests {
		t.Run(tt.method.String(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.method.DestinationAccountCode())
		})
	}
}
