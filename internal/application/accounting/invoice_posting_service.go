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

// InvoicePostingService reacts to an issued invoice by writing its
// receivable/revenue/tax entry into the ledger and linking the entry back
// onto the invoice. Triggered by the issuing flow, so postings run under
// the system identity.
type InvoicePostingService struct {
	invoiceRepo accounting.InvoiceRepository
	resolver    *AccountResolver
	poster      *LedgerPoster
	logger      *zap.Logger
}

// NewInvoicePostingService creates a new InvoicePostingService
func NewInvoicePostingService(
	invoiceRepo accounting.InvoiceRepository,
	resolver *AccountResolver,
	poster *LedgerPoster,
	logger *zap.Logger,
) *InvoicePostingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicePostingService{
		invoiceRepo: invoiceRepo,
		resolver:    resolver,
		poster:      poster,
		logger:      logger,
	}
}

// PostInvoiceIssued writes the ledger entry for an issued invoice:
// debit accounts-receivable for the total, credit sales-revenue for the
// subtotal, credit tax-payable for the tax total (omitted when zero, a
// zero movement is not a valid ledger line). Fails without touching the
// ledger when the invoice is missing, already posted, or any account
// cannot be resolved. An invoice belonging to another company is
// reported as not found.
func (s *InvoicePostingService) PostInvoiceIssued(ctx context.Context, companyID, invoiceID uuid.UUID) (*accounting.LedgerEntry, error) {
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
	if invoice.IsPosted() {
		return nil, fmt.Errorf("invoice %s: %w", invoice.InvoiceNumber, accounting.ErrAlreadyPosted)
	}

	accounts, err := s.resolver.ResolveAll(ctx, invoice.CompanyID,
		accounting.AccountCodeReceivable,
		accounting.AccountCodeSalesRevenue,
		accounting.AccountCodeTaxPayable,
	)
	if err != nil {
		return nil, err
	}
	receivable := accounts[accounting.AccountCodeReceivable]
	revenue := accounts[accounting.AccountCodeSalesRevenue]
	taxPayable := accounts[accounting.AccountCodeTaxPayable]

	description := fmt.Sprintf("Factura %s - %s", invoice.InvoiceNumber, invoice.CustomerName)
	reference := fmt.Sprintf("FACT-%s", invoice.InvoiceNumber)

	lines := []accounting.LineSpec{
		accounting.DebitLine(receivable.ID, receivable.Label(), invoice.Total, description),
		accounting.CreditLine(revenue.ID, revenue.Label(), invoice.Subtotal, description),
	}
	if invoice.TaxTotal.IsPositive() {
		lines = append(lines, accounting.CreditLine(taxPayable.ID, taxPayable.Label(), invoice.TaxTotal, description))
	}

	entry, err := s.poster.Post(ctx, PostRequest{
		CompanyID:   invoice.CompanyID,
		CountryID:   invoice.CountryID,
		Date:        invoice.IssuedAt,
		Description: description,
		Reference:   reference,
		DocumentRef: accounting.DocumentRef{
			DocumentType: accounting.DocumentTypeInvoice,
			SourceID:     invoice.ID,
			SourceNumber: invoice.InvoiceNumber,
		},
		Lines: lines,
		Actor: accounting.SystemActor(),
	})
	if err != nil {
		return nil, err
	}

	if err := invoice.SetLedgerEntry(entry.ID); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.SetLedgerEntry(ctx, invoice.ID, entry.ID); err != nil {
		return nil, fmt.Errorf("failed to link ledger entry to invoice: %w", err)
	}

	s.logger.Info("Invoice posted to ledger",
		zap.String("invoice_number", invoice.InvoiceNumber),
		zap.String("entry_number", entry.EntryNumber),
		zap.String("total", invoice.Total.String()))

	return entry, nil
}
