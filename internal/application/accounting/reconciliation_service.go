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

// ReconciliationReport summarizes one repair run
type ReconciliationReport struct {
	Examined int                     `json:"examined"`
	Reposted int                     `json:"reposted"`
	Failed   []ReconciliationFailure `json:"failed,omitempty"`
}

// ReconciliationFailure names one payment the repair run could not post
type ReconciliationFailure struct {
	PaymentID uuid.UUID `json:"payment_id"`
	Reason    string    `json:"reason"`
}

// defaultReconciliationBatchLimit caps how many unlinked payments one
// repair run will touch when no limit is configured.
const defaultReconciliationBatchLimit = 500

// ReconciliationService repairs the residue of partial payment
// allocations: payments whose row committed but whose ledger posting
// failed. Each unlinked payment gets the same two-line collection entry
// the normal path would have written. Failures on individual payments are
// collected and reported, never fatal to the run.
type ReconciliationService struct {
	paymentRepo accounting.PaymentRepository
	invoiceRepo accounting.InvoiceRepository
	payments    *PaymentService
	batchLimit  int
	logger      *zap.Logger
}

// NewReconciliationService creates a new ReconciliationService. batchLimit
// bounds how many payments one run examines; zero or negative uses the
// default.
func NewReconciliationService(
	paymentRepo accounting.PaymentRepository,
	invoiceRepo accounting.InvoiceRepository,
	payments *PaymentService,
	batchLimit int,
	logger *zap.Logger,
) *ReconciliationService {
	if batchLimit <= 0 {
		batchLimit = defaultReconciliationBatchLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReconciliationService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		payments:    payments,
		batchLimit:  batchLimit,
		logger:      logger,
	}
}

// RepostUnlinkedPayments finds payments with no ledger link for the
// company and posts their collection entries.
func (s *ReconciliationService) RepostUnlinkedPayments(ctx context.Context, companyID uuid.UUID) (*ReconciliationReport, error) {
	unposted, err := s.paymentRepo.FindUnposted(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list unposted payments: %w", err)
	}
	if len(unposted) > s.batchLimit {
		s.logger.Info("Reconciliation batch truncated",
			zap.String("company_id", companyID.String()),
			zap.Int("unposted", len(unposted)),
			zap.Int("batch_limit", s.batchLimit))
		unposted = unposted[:s.batchLimit]
	}

	report := &ReconciliationReport{Examined: len(unposted)}
	for i := range unposted {
		payment := &unposted[i]

		invoice, err := s.invoiceRepo.FindByID(ctx, payment.InvoiceID)
		if err != nil {
			reason := "invoice lookup failed"
			if errors.Is(err, shared.ErrNotFound) {
				reason = "invoice no longer exists"
			}
			report.Failed = append(report.Failed, ReconciliationFailure{PaymentID: payment.ID, Reason: reason})
			s.logger.Warn("Reconciliation skipped payment",
				zap.String("payment_id", payment.ID.String()),
				zap.String("reason", reason),
				zap.Error(err))
			continue
		}

		if _, err := s.payments.postPaymentEntry(ctx, invoice, payment); err != nil {
			report.Failed = append(report.Failed, ReconciliationFailure{PaymentID: payment.ID, Reason: err.Error()})
			s.logger.Warn("Reconciliation failed to repost payment",
				zap.String("payment_id", payment.ID.String()),
				zap.Error(err))
			continue
		}
		report.Reposted++
	}

	s.logger.Info("Payment reconciliation finished",
		zap.String("company_id", companyID.String()),
		zap.Int("examined", report.Examined),
		zap.Int("reposted", report.Reposted),
		zap.Int("failed", len(report.Failed)))

	return report, nil
}
