package accounting

import (
	"time"

	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentState represents how much of an invoice has been collected
type PaymentState string

const (
	PaymentStateIssued        PaymentState = "ISSUED"         // No payments recorded
	PaymentStatePartiallyPaid PaymentState = "PARTIALLY_PAID" // 0 < paid < total
	PaymentStatePaid          PaymentState = "PAID"           // paid >= total
)

// IsValid checks if the state is a valid PaymentState
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStateIssued, PaymentStatePartiallyPaid, PaymentStatePaid:
		return true
	}
	return false
}

// String returns the string representation of PaymentState
func (s PaymentState) String() string {
	return string(s)
}

// DerivePaymentState computes the payment state as a pure function of the
// invoice total versus the sum of recorded payments.
func DerivePaymentState(total, paid decimal.Decimal) PaymentState {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PaymentStatePaid
	case paid.IsPositive():
		return PaymentStatePartiallyPaid
	default:
		return PaymentStateIssued
	}
}

// InvoiceSeries categorizes invoices; rollback eligibility hangs on it
type InvoiceSeries string

const (
	SeriesSales      InvoiceSeries = "A"   // Regular sales invoices
	SeriesCommission InvoiceSeries = "ASI" // Partner commission billing invoices
)

// IsValid checks if the series is valid
func (s InvoiceSeries) IsValid() bool {
	return s == SeriesSales || s == SeriesCommission
}

// Invoice is the slice of the externally owned invoice document this core
// consumes and mutates: posting links a ledger entry onto it, payments
// update its state, rollback deletes it.
type Invoice struct {
	shared.CompanyAggregateRoot
	CountryID     uuid.UUID       `json:"country_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Series        InvoiceSeries   `json:"series"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	Total         decimal.Decimal `json:"total"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	LedgerEntryID *uuid.UUID      `json:"ledger_entry_id"` // Weak back-reference, not ownership
	CommissionID  *uuid.UUID      `json:"commission_id"`
	DGIReference  string          `json:"dgi_reference"` // External e-invoicing approval ref, opaque here
	PaymentState  PaymentState    `json:"payment_state"`
	IssuedAt      time.Time       `json:"issued_at"`
}

// IsPosted returns true once the invoice carries a ledger link
func (i *Invoice) IsPosted() bool {
	return i.LedgerEntryID != nil && *i.LedgerEntryID != uuid.Nil
}

// EligibleForRollback restricts the rollback path to commission-billing
// invoices; every other class of document must be corrected, not deleted.
func (i *Invoice) EligibleForRollback() bool {
	return i.Series == SeriesCommission
}

// SetLedgerEntry records the ledger back-reference
func (i *Invoice) SetLedgerEntry(entryID uuid.UUID) error {
	if i.IsPosted() {
		return ErrAlreadyPosted
	}
	i.LedgerEntryID = &entryID
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// ApplyPaidTotal derives and stores the payment state for the given
// cumulative paid amount, returning the new state and the remaining
// balance (floored at zero for overpayments).
func (i *Invoice) ApplyPaidTotal(paid decimal.Decimal) (PaymentState, decimal.Decimal) {
	state := DerivePaymentState(i.Total, paid)
	i.PaymentState = state
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	remaining := i.Total.Sub(paid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return state, remaining
}
