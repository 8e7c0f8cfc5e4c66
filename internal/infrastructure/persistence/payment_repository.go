package persistence

import (
	"context"
	"time"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/facturas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

var _ accounting.PaymentRepository = (*GormPaymentRepository)(nil)

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Create inserts a payment row
func (r *GormPaymentRepository) Create(ctx context.Context, payment *accounting.Payment) error {
	model := &models.PaymentModel{}
	model.FromDomain(payment)
	return dbFrom(ctx, r.db).Create(model).Error
}

// SumByInvoice sums all recorded payment amounts for an invoice
func (r *GormPaymentRepository) SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := dbFrom(ctx, r.db).Model(&models.PaymentModel{}).
		Where("invoice_id = ?", invoiceID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	return sum, nil
}

// ListByInvoice lists payments for an invoice in creation order
func (r *GormPaymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]accounting.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := dbFrom(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]accounting.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// SetLedgerEntry records the ledger back-reference on the payment
func (r *GormPaymentRepository) SetLedgerEntry(ctx context.Context, paymentID, entryID uuid.UUID) error {
	result := dbFrom(ctx, r.db).Model(&models.PaymentModel{}).
		Where("id = ?", paymentID).
		Updates(map[string]any{
			"ledger_entry_id": entryID,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindUnposted lists payments that never received a ledger link. The
// company scope comes through the invoice the payment belongs to.
func (r *GormPaymentRepository) FindUnposted(ctx context.Context, companyID uuid.UUID) ([]accounting.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := dbFrom(ctx, r.db).
		Joins("JOIN invoices ON invoices.id = payments.invoice_id").
		Where("payments.ledger_entry_id IS NULL AND invoices.company_id = ?", companyID).
		Order("payments.created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	payments := make([]accounting.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments, nil
}

// DeleteByInvoice hard-deletes all payments of an invoice
func (r *GormPaymentRepository) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	return dbFrom(ctx, r.db).
		Where("invoice_id = ?", invoiceID).
		Delete(&models.PaymentModel{}).Error
}
