package accounting

import (
	"time"

	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a collection was received
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodCheck    PaymentMethod = "CHECK"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodOther    PaymentMethod = "OTHER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodCheck,
		PaymentMethodCard, PaymentMethodOther:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// DestinationAccountCode maps the method to the chart account the money
// lands in. Unrecognized methods fall back to the cash account.
func (m PaymentMethod) DestinationAccountCode() string {
	switch m {
	case PaymentMethodTransfer, PaymentMethodCheck:
		return AccountCodeBank
	case PaymentMethodCard:
		return AccountCodeCardClearing
	default:
		return AccountCodeCash
	}
}

// Payment is a single recorded collection against one invoice. Created
// once per collection event, never mutated afterwards except for the
// ledger link-back; deleted only as part of a full invoice rollback.
type Payment struct {
	shared.BaseAggregateRoot
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	PaymentDate   time.Time       `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	Method        PaymentMethod   `json:"method"`
	Reference     string          `json:"reference"`
	Notes         string          `json:"notes"`
	LedgerEntryID *uuid.UUID      `json:"ledger_entry_id"` // Set once the collection is posted
	CreatedBy     Actor           `json:"created_by"`
}

// NewPayment creates a payment record for a collection event
func NewPayment(
	invoiceID uuid.UUID,
	paymentDate time.Time,
	amount decimal.Decimal,
	method PaymentMethod,
	reference string,
	notes string,
	createdBy Actor,
) (*Payment, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INVOICE", "Payment requires an invoice")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if !createdBy.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Acting identity is not valid")
	}
	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceID:         invoiceID,
		PaymentDate:       paymentDate,
		Amount:            amount,
		Method:            method,
		Reference:         reference,
		Notes:             notes,
		CreatedBy:         createdBy,
	}, nil
}

// IsPosted returns true once the payment carries a ledger link
func (p *Payment) IsPosted() bool {
	return p.LedgerEntryID != nil && *p.LedgerEntryID != uuid.Nil
}

// SetLedgerEntry records the ledger back-reference
func (p *Payment) SetLedgerEntry(entryID uuid.UUID) {
	p.LedgerEntryID = &entryID
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
}
