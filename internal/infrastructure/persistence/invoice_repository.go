package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/facturas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

var _ accounting.InvoiceRepository = (*GormInvoiceRepository)(nil)

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Invoice, error) {
	var model models.InvoiceModel
	if err := dbFrom(ctx, r.db).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *accounting.Invoice) error {
	model := &models.InvoiceModel{}
	model.FromDomain(invoice)
	return dbFrom(ctx, r.db).Save(model).Error
}

// UpdatePaymentState persists a derived payment state
func (r *GormInvoiceRepository) UpdatePaymentState(ctx context.Context, invoiceID uuid.UUID, state accounting.PaymentState) error {
	result := dbFrom(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("id = ?", invoiceID).
		Updates(map[string]any{
			"payment_state": state,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetLedgerEntry records the ledger back-reference on the invoice
func (r *GormInvoiceRepository) SetLedgerEntry(ctx context.Context, invoiceID, entryID uuid.UUID) error {
	result := dbFrom(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("id = ? AND ledger_entry_id IS NULL", invoiceID).
		Updates(map[string]any{
			"ledger_entry_id": entryID,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return accounting.ErrAlreadyPosted
	}
	return nil
}

// DeleteWithItems hard-deletes the invoice. Line items live in the
// issuing system's tables with ON DELETE CASCADE on the invoice id.
func (r *GormInvoiceRepository) DeleteWithItems(ctx context.Context, id uuid.UUID) error {
	result := dbFrom(ctx, r.db).Where("id = ?", id).Delete(&models.InvoiceModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
