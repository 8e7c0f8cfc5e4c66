package accounting

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RollbackSummary reports what a rollback removed and reverted
type RollbackSummary struct {
	InvoiceID           uuid.UUID  `json:"invoice_id"`
	InvoiceNumber       string     `json:"invoice_number"`
	LedgerEntryID       *uuid.UUID `json:"ledger_entry_id,omitempty"`
	LedgerReverted      bool       `json:"ledger_reverted"`
	CommissionsReverted int        `json:"commissions_reverted"`
	PaymentsDeleted     int        `json:"payments_deleted"`
}

// RollbackService unwinds a commission-billing invoice as if it never
// existed: the ledger entry, the commission links, the payments and the
// invoice itself. This is the only hard-delete path in the system and it
// is restricted to the commission series; everything else gets corrected
// with new documents, never deleted.
type RollbackService struct {
	invoiceRepo    accounting.InvoiceRepository
	entryRepo      accounting.LedgerEntryRepository
	paymentRepo    accounting.PaymentRepository
	commissionRepo accounting.CommissionRepository
	txRunner       shared.TxRunner
	logger         *zap.Logger
}

// NewRollbackService creates a new RollbackService
func NewRollbackService(
	invoiceRepo accounting.InvoiceRepository,
	entryRepo accounting.LedgerEntryRepository,
	paymentRepo accounting.PaymentRepository,
	commissionRepo accounting.CommissionRepository,
	txRunner shared.TxRunner,
	logger *zap.Logger,
) *RollbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RollbackService{
		invoiceRepo:    invoiceRepo,
		entryRepo:      entryRepo,
		paymentRepo:    paymentRepo,
		commissionRepo: commissionRepo,
		txRunner:       txRunner,
		logger:         logger,
	}
}

// Rollback removes the invoice and everything hanging off it in one
// transaction. Eligibility is checked before any write: only
// commission-billing invoices may be rolled back (ErrRollbackNotAllowed
// otherwise, nothing touched). A failure at any step aborts the whole
// transaction; the typed error still names the step that failed. An
// invoice belonging to another company is reported as not found.
func (s *RollbackService) Rollback(ctx context.Context, companyID, invoiceID uuid.UUID) (*RollbackSummary, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("invoice %s: %w", invoiceID, accounting.ErrInvoiceNotFound)
		}
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	if invoice.CompanyID != companyID {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, accounting.ErrInvoiceNotFound)
	}
	if !invoice.EligibleForRollback() {
		return nil, fmt.Errorf("invoice %s has series %s: %w",
			invoice.InvoiceNumber, invoice.Series, accounting.ErrRollbackNotAllowed)
	}

	summary := &RollbackSummary{
		InvoiceID:     invoice.ID,
		InvoiceNumber: invoice.InvoiceNumber,
		LedgerEntryID: invoice.LedgerEntryID,
	}

	err = s.txRunner.InTx(ctx, func(txCtx context.Context) error {
		if invoice.IsPosted() {
			if err := s.entryRepo.DeleteWithLines(txCtx, *invoice.LedgerEntryID); err != nil {
				return fmt.Errorf("%v: %w", err, accounting.ErrLedgerDeleteFailure)
			}
			summary.LedgerReverted = true
		}

		commissions, err := s.commissionRepo.FindByBilledInvoice(txCtx, invoice.ID)
		if err != nil {
			return fmt.Errorf("%v: %w", err, accounting.ErrCompensationFailure)
		}
		for i := range commissions {
			commission := &commissions[i]
			if err := commission.RevertToPending(); err != nil {
				return fmt.Errorf("commission %s: %v: %w", commission.ID, err, accounting.ErrCompensationFailure)
			}
			if err := s.commissionRepo.Save(txCtx, commission); err != nil {
				return fmt.Errorf("commission %s: %v: %w", commission.ID, err, accounting.ErrCompensationFailure)
			}
			summary.CommissionsReverted++
		}

		payments, err := s.paymentRepo.ListByInvoice(txCtx, invoice.ID)
		if err != nil {
			return fmt.Errorf("failed to list invoice payments: %w", err)
		}
		if err := s.paymentRepo.DeleteByInvoice(txCtx, invoice.ID); err != nil {
			return fmt.Errorf("failed to delete invoice payments: %w", err)
		}
		summary.PaymentsDeleted = len(payments)

		if err := s.invoiceRepo.DeleteWithItems(txCtx, invoice.ID); err != nil {
			return fmt.Errorf("failed to delete invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Invoice rolled back",
		zap.String("invoice_number", summary.InvoiceNumber),
		zap.Bool("ledger_reverted", summary.LedgerReverted),
		zap.Int("commissions_reverted", summary.CommissionsReverted),
		zap.Int("payments_deleted", summary.PaymentsDeleted))

	return summary, nil
}
