package persistence

import (
	"context"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCommissionRepository implements CommissionRepository using GORM
type GormCommissionRepository struct {
	db *gorm.DB
}

var _ accounting.CommissionRepository = (*GormCommissionRepository)(nil)

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// FindByBilledInvoice lists commissions billed by the given invoice
func (r *GormCommissionRepository) FindByBilledInvoice(ctx context.Context, invoiceID uuid.UUID) ([]accounting.Commission, error) {
	var commissionModels []models.CommissionModel
	if err := dbFrom(ctx, r.db).
		Where("invoice_id = ? AND state = ?", invoiceID, accounting.CommissionStateBilled).
		Find(&commissionModels).Error; err != nil {
		return nil, err
	}
	commissions := make([]accounting.Commission, len(commissionModels))
	for i := range commissionModels {
		commissions[i] = *commissionModels[i].ToDomain()
	}
	return commissions, nil
}

// Save updates a commission record
func (r *GormCommissionRepository) Save(ctx context.Context, commission *accounting.Commission) error {
	model := &models.CommissionModel{}
	model.FromDomain(commission)
	return dbFrom(ctx, r.db).Save(model).Error
}
