package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/facturas/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormLedgerEntryRepository implements LedgerEntryRepository using GORM
type GormLedgerEntryRepository struct {
	db *gorm.DB
}

var _ accounting.LedgerEntryRepository = (*GormLedgerEntryRepository)(nil)

// NewGormLedgerEntryRepository creates a new GormLedgerEntryRepository
func NewGormLedgerEntryRepository(db *gorm.DB) *GormLedgerEntryRepository {
	return &GormLedgerEntryRepository{db: db}
}

// isUniqueViolation reports whether an insert hit a unique constraint
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key")
}

// CreateWithLines writes the entry header and all its lines in one
// transaction. A unique-constraint hit on (company_id, entry_number)
// becomes ErrEntryNumberConflict so the poster can reallocate.
func (r *GormLedgerEntryRepository) CreateWithLines(ctx context.Context, entry *accounting.LedgerEntry) error {
	model := &models.LedgerEntryModel{}
	model.FromDomain(entry)

	err := dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		lines := model.Lines
		model.Lines = nil
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return accounting.ErrEntryNumberConflict
		}
		return err
	}
	return nil
}

// FindByID loads an entry with its lines
func (r *GormLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.LedgerEntry, error) {
	var model models.LedgerEntryModel
	if err := dbFrom(ctx, r.db).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany lists entries for a company with filtering
func (r *GormLedgerEntryRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter accounting.LedgerEntryFilter) ([]accounting.LedgerEntry, error) {
	var entryModels []models.LedgerEntryModel
	query := dbFrom(ctx, r.db).Model(&models.LedgerEntryModel{}).
		Preload("Lines").
		Where("company_id = ?", companyID)
	query = r.applyFilter(query, filter)

	if err := query.Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]accounting.LedgerEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = *entryModels[i].ToDomain()
	}
	return entries, nil
}

// CountByCompany counts entries for pagination
func (r *GormLedgerEntryRepository) CountByCompany(ctx context.Context, companyID uuid.UUID, filter accounting.LedgerEntryFilter) (int64, error) {
	var count int64
	query := dbFrom(ctx, r.db).Model(&models.LedgerEntryModel{}).
		Where("company_id = ?", companyID)
	query = r.applyConditions(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxEntryNumber returns the highest issued entry number for a company.
// Entry numbers share a fixed-width numeric suffix, so the lexicographic
// max is the numeric max until the sequence outgrows the width; the
// longer-string comparison keeps it correct past that point.
func (r *GormLedgerEntryRepository) MaxEntryNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	var number string
	err := dbFrom(ctx, r.db).Model(&models.LedgerEntryModel{}).
		Where("company_id = ?", companyID).
		Select("entry_number").
		Order("length(entry_number) DESC, entry_number DESC").
		Limit(1).
		Scan(&number).Error
	if err != nil {
		return "", err
	}
	return number, nil
}

// DeleteWithLines removes the lines then the header in one transaction
func (r *GormLedgerEntryRepository) DeleteWithLines(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", id).Delete(&models.LedgerLineModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.LedgerEntryModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// applyFilter applies conditions plus ordering and pagination
func (r *GormLedgerEntryRepository) applyFilter(query *gorm.DB, filter accounting.LedgerEntryFilter) *gorm.DB {
	query = r.applyConditions(query, filter)

	orderBy := "date"
	switch filter.OrderBy {
	case "entry_number", "date", "created_at", "reference":
		orderBy = filter.OrderBy
	}
	dir := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		dir = "ASC"
	}
	query = query.Order(orderBy + " " + dir)

	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyConditions applies the where clauses shared by list and count
func (r *GormLedgerEntryRepository) applyConditions(query *gorm.DB, filter accounting.LedgerEntryFilter) *gorm.DB {
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DocumentType != nil {
		query = query.Where("document_type = ?", *filter.DocumentType)
	}
	if filter.SourceID != nil {
		query = query.Where("source_id = ?", *filter.SourceID)
	}
	if filter.FromDate != nil {
		query = query.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("date <= ?", *filter.ToDate)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("reference ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	return query
}
