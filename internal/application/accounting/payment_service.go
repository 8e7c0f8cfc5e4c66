package accounting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PaymentInput carries one collection event against an invoice
type PaymentInput struct {
	Date      time.Time
	Amount    decimal.Decimal
	Method    accounting.PaymentMethod
	Reference string
	Notes     string
	Actor     accounting.Actor
}

// PaymentAllocation is the outcome of applying a payment: the stored
// payment row plus the derived invoice figures.
type PaymentAllocation struct {
	Payment          *accounting.Payment     `json:"payment"`
	TotalPaid        decimal.Decimal         `json:"total_paid"`
	RemainingBalance decimal.Decimal         `json:"remaining_balance"`
	NewState         accounting.PaymentState `json:"new_state"`
	LedgerEntry      *accounting.LedgerEntry `json:"ledger_entry,omitempty"`
}

// PaymentService records collections against invoices and keeps the
// invoice payment state and the ledger in step.
//
// The payment row, the payment sum and the invoice state update commit in
// one transaction. The ledger posting runs after that commit: when it
// fails the committed allocation stands and the error is
// ErrPaymentLedgerFailure, repaired later by reconciliation. Applying the
// same input twice is two separate collections, never deduplicated.
type PaymentService struct {
	paymentRepo accounting.PaymentRepository
	invoiceRepo accounting.InvoiceRepository
	resolver    *AccountResolver
	poster      *LedgerPoster
	txRunner    shared.TxRunner
	logger      *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo accounting.PaymentRepository,
	invoiceRepo accounting.InvoiceRepository,
	resolver *AccountResolver,
	poster *LedgerPoster,
	txRunner shared.TxRunner,
	logger *zap.Logger,
) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		resolver:    resolver,
		poster:      poster,
		txRunner:    txRunner,
		logger:      logger,
	}
}

// ApplyPayment records a payment against the invoice, rederives the
// invoice payment state from the full payment sum, and posts the
// collection to the ledger. An invoice belonging to another company is
// reported as not found.
func (s *PaymentService) ApplyPayment(ctx context.Context, companyID, invoiceID uuid.UUID, input PaymentInput) (*PaymentAllocation, error) {
	payment, err := accounting.NewPayment(invoiceID, input.Date, input.Amount, input.Method, input.Reference, input.Notes, input.Actor)
	if err != nil {
		return nil, err
	}

	var (
		invoice   *accounting.Invoice
		totalPaid decimal.Decimal
		remaining decimal.Decimal
		newState  accounting.PaymentState
	)
	err = s.txRunner.InTx(ctx, func(txCtx context.Context) error {
		if err := s.paymentRepo.Create(txCtx, payment); err != nil {
			return fmt.Errorf("%v: %w", err, accounting.ErrPaymentPersistFailure)
		}

		invoice, err = s.invoiceRepo.FindByID(txCtx, invoiceID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return fmt.Errorf("invoice %s: %w", invoiceID, accounting.ErrInvoiceNotFound)
			}
			return fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
		}
		if invoice.CompanyID != companyID {
			return fmt.Errorf("invoice %s: %w", invoiceID, accounting.ErrInvoiceNotFound)
		}

		totalPaid, err = s.paymentRepo.SumByInvoice(txCtx, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to sum payments: %w", err)
		}

		newState, remaining = invoice.ApplyPaidTotal(totalPaid)
		if err := s.invoiceRepo.UpdatePaymentState(txCtx, invoiceID, newState); err != nil {
			return fmt.Errorf("failed to update invoice payment state: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	allocation := &PaymentAllocation{
		Payment:          payment,
		TotalPaid:        totalPaid,
		RemainingBalance: remaining,
		NewState:         newState,
	}

	// The allocation is committed; the ledger posting below reports its
	// failure without undoing it.
	entry, err := s.postPaymentEntry(ctx, invoice, payment)
	if err != nil {
		s.logger.Error("Payment recorded but ledger posting failed",
			zap.String("payment_id", payment.ID.String()),
			zap.String("invoice_number", invoice.InvoiceNumber),
			zap.Error(err))
		return allocation, fmt.Errorf("%v: %w", err, accounting.ErrPaymentLedgerFailure)
	}
	allocation.LedgerEntry = entry

	s.logger.Info("Payment applied",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("amount", payment.Amount.String()),
		zap.String("method", payment.Method.String()),
		zap.String("new_state", newState.String()),
		zap.String("entry_number", entry.EntryNumber))

	return allocation, nil
}

// postPaymentEntry writes the two-line collection entry (debit the money
// destination, credit accounts-receivable) and links it onto the payment.
func (s *PaymentService) postPaymentEntry(ctx context.Context, invoice *accounting.Invoice, payment *accounting.Payment) (*accounting.LedgerEntry, error) {
	destination, err := s.resolver.Resolve(ctx, invoice.CompanyID, payment.Method.DestinationAccountCode())
	if err != nil {
		return nil, err
	}
	receivable, err := s.resolver.Resolve(ctx, invoice.CompanyID, accounting.AccountCodeReceivable)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Cobro %s - Factura %s", payment.Method.String(), invoice.InvoiceNumber)
	entry, err := s.poster.Post(ctx, PostRequest{
		CompanyID:   invoice.CompanyID,
		CountryID:   invoice.CountryID,
		Date:        payment.PaymentDate,
		Description: description,
		Reference:   fmt.Sprintf("FACT-%s", invoice.InvoiceNumber),
		DocumentRef: accounting.DocumentRef{
			DocumentType: accounting.DocumentTypePayment,
			SourceID:     payment.ID,
			SourceNumber: invoice.InvoiceNumber,
		},
		Lines: []accounting.LineSpec{
			accounting.DebitLine(destination.ID, destination.Label(), payment.Amount, description),
			accounting.CreditLine(receivable.ID, receivable.Label(), payment.Amount, description),
		},
		Actor: accounting.SystemActor(),
	})
	if err != nil {
		return nil, err
	}

	payment.SetLedgerEntry(entry.ID)
	if err := s.paymentRepo.SetLedgerEntry(ctx, payment.ID, entry.ID); err != nil {
		return nil, fmt.Errorf("failed to link ledger entry to payment: %w", err)
	}
	return entry, nil
}
