package accounting

import (
	"context"
	"time"

	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository reads the company chart of accounts (read-only here)
type AccountRepository interface {
	// FindByCode finds an active account by exact code within a company's
	// chart. Returns shared.ErrNotFound when no match exists.
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Account, error)
}

// LedgerEntryFilter defines filtering options for ledger entry queries
type LedgerEntryFilter struct {
	shared.Filter
	Status       *EntryStatus
	DocumentType *DocumentType
	SourceID     *uuid.UUID
	FromDate     *time.Time
	ToDate       *time.Time
}

// LedgerEntryRepository persists balanced ledger entries
type LedgerEntryRepository interface {
	// CreateWithLines writes the header and all lines in one transaction.
	// Returns ErrEntryNumberConflict when the (company, entry number)
	// uniqueness constraint rejects the insert.
	CreateWithLines(ctx context.Context, entry *LedgerEntry) error

	// FindByID loads an entry with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*LedgerEntry, error)

	// FindByCompany lists entries for a company with filtering
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter LedgerEntryFilter) ([]LedgerEntry, error)

	// CountByCompany counts entries for pagination
	CountByCompany(ctx context.Context, companyID uuid.UUID, filter LedgerEntryFilter) (int64, error)

	// MaxEntryNumber returns the highest issued entry number for a
	// company, or "" when no entry exists yet
	MaxEntryNumber(ctx context.Context, companyID uuid.UUID) (string, error)

	// DeleteWithLines removes the lines then the header in one
	// transaction. Used only by rollback.
	DeleteWithLines(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository accesses the externally owned invoice documents
type InvoiceRepository interface {
	// FindByID loads an invoice. Returns shared.ErrNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// Save creates or updates an invoice
	Save(ctx context.Context, invoice *Invoice) error

	// UpdatePaymentState persists a derived payment state
	UpdatePaymentState(ctx context.Context, invoiceID uuid.UUID, state PaymentState) error

	// SetLedgerEntry records the ledger back-reference on the invoice
	SetLedgerEntry(ctx context.Context, invoiceID, entryID uuid.UUID) error

	// DeleteWithItems hard-deletes the invoice and its line items.
	// Used only by rollback.
	DeleteWithItems(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository persists collections recorded against invoices
type PaymentRepository interface {
	// Create inserts a payment row
	Create(ctx context.Context, payment *Payment) error

	// SumByInvoice sums all recorded payment amounts for an invoice
	SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)

	// ListByInvoice lists payments for an invoice in creation order
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Payment, error)

	// SetLedgerEntry records the ledger back-reference on the payment
	SetLedgerEntry(ctx context.Context, paymentID, entryID uuid.UUID) error

	// FindUnposted lists payments that never received a ledger link
	// (the residue of partial payment allocation failures)
	FindUnposted(ctx context.Context, companyID uuid.UUID) ([]Payment, error)

	// DeleteByInvoice hard-deletes all payments of an invoice.
	// Used only by rollback.
	DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error
}

// CommissionRepository accesses the externally owned commission records
type CommissionRepository interface {
	// FindByBilledInvoice lists commissions billed by the given invoice
	FindByBilledInvoice(ctx context.Context, invoiceID uuid.UUID) ([]Commission, error)

	// Save updates a commission record
	Save(ctx context.Context, commission *Commission) error
}
