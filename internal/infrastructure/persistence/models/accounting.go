package models

import (
	"time"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountModel is the persistence model for chart-of-accounts entries.
type AccountModel struct {
	CompanyAggregateModel
	Code   string `gorm:"type:varchar(50);not null;uniqueIndex:idx_account_company_code,priority:2"`
	Name   string `gorm:"type:varchar(200);not null"`
	Active bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (AccountModel) TableName() string {
	return "accounts"
}

// ToDomain converts the persistence model to a domain Account
func (m *AccountModel) ToDomain() *accounting.Account {
	return &accounting.Account{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		Code:                 m.Code,
		Name:                 m.Name,
		Active:               m.Active,
	}
}

// FromDomain populates the persistence model from a domain Account
func (m *AccountModel) FromDomain(a *accounting.Account) {
	m.FromDomainCompanyAggregateRoot(a.CompanyAggregateRoot)
	m.Code = a.Code
	m.Name = a.Name
	m.Active = a.Active
}

// LedgerEntryModel is the persistence model for the LedgerEntry aggregate
// root. The UNIQUE(company_id, entry_number) index turns concurrent number
// allocations into insert conflicts the poster can retry.
type LedgerEntryModel struct {
	CompanyAggregateModel
	CountryID       uuid.UUID               `gorm:"type:uuid;not null;index"`
	EntryNumber     string                  `gorm:"type:varchar(30);not null;uniqueIndex:idx_entry_company_number,priority:2"`
	Date            time.Time               `gorm:"not null;index"`
	Description     string                  `gorm:"type:varchar(500)"`
	Reference       string                  `gorm:"type:varchar(100);not null;index"`
	Status          accounting.EntryStatus  `gorm:"type:varchar(20);not null;default:'CONFIRMED'"`
	DocumentType    accounting.DocumentType `gorm:"type:varchar(20);not null;index"`
	SourceID        uuid.UUID               `gorm:"type:uuid;not null;index"`
	SourceNumber    string                  `gorm:"type:varchar(50);not null"`
	CreatedByKind   accounting.ActorKind    `gorm:"type:varchar(10);not null"`
	CreatedByUserID *uuid.UUID              `gorm:"type:uuid"`
	Lines           []LedgerLineModel       `gorm:"foreignKey:EntryID;references:ID"`
}

// TableName returns the table name for GORM
func (LedgerEntryModel) TableName() string {
	return "ledger_entries"
}

// ToDomain converts the persistence model to a domain LedgerEntry
func (m *LedgerEntryModel) ToDomain() *accounting.LedgerEntry {
	entry := &accounting.LedgerEntry{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		CountryID:            m.CountryID,
		EntryNumber:          m.EntryNumber,
		Date:                 m.Date,
		Description:          m.Description,
		Reference:            m.Reference,
		Status:               m.Status,
		DocumentRef: accounting.DocumentRef{
			DocumentType: m.DocumentType,
			SourceID:     m.SourceID,
			SourceNumber: m.SourceNumber,
		},
		CreatedBy: accounting.Actor{
			Kind:   m.CreatedByKind,
			UserID: m.CreatedByUserID,
		},
	}
	entry.Lines = make([]accounting.LedgerLine, 0, len(m.Lines))
	for i := range m.Lines {
		entry.Lines = append(entry.Lines, *m.Lines[i].ToDomain())
	}
	return entry
}

// FromDomain populates the persistence model from a domain LedgerEntry
func (m *LedgerEntryModel) FromDomain(e *accounting.LedgerEntry) {
	m.FromDomainCompanyAggregateRoot(e.CompanyAggregateRoot)
	m.CountryID = e.CountryID
	m.EntryNumber = e.EntryNumber
	m.Date = e.Date
	m.Description = e.Description
	m.Reference = e.Reference
	m.Status = e.Status
	m.DocumentType = e.DocumentRef.DocumentType
	m.SourceID = e.DocumentRef.SourceID
	m.SourceNumber = e.DocumentRef.SourceNumber
	m.CreatedByKind = e.CreatedBy.Kind
	m.CreatedByUserID = e.CreatedBy.UserID
	m.Lines = make([]LedgerLineModel, 0, len(e.Lines))
	for i := range e.Lines {
		line := LedgerLineModel{}
		line.FromDomain(&e.Lines[i])
		m.Lines = append(m.Lines, line)
	}
}

// LedgerLineModel is the persistence model for one ledger line.
type LedgerLineModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	EntryID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountLabel string          `gorm:"type:varchar(250);not null"`
	Debit        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Credit       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Description  string          `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (LedgerLineModel) TableName() string {
	return "ledger_lines"
}

// ToDomain converts the persistence model to a domain LedgerLine
func (m *LedgerLineModel) ToDomain() *accounting.LedgerLine {
	return &accounting.LedgerLine{
		ID:           m.ID,
		EntryID:      m.EntryID,
		AccountID:    m.AccountID,
		AccountLabel: m.AccountLabel,
		Debit:        m.Debit,
		Credit:       m.Credit,
		Description:  m.Description,
	}
}

// FromDomain populates the persistence model from a domain LedgerLine
func (m *LedgerLineModel) FromDomain(l *accounting.LedgerLine) {
	m.ID = l.ID
	m.EntryID = l.EntryID
	m.AccountID = l.AccountID
	m.AccountLabel = l.AccountLabel
	m.Debit = l.Debit
	m.Credit = l.Credit
	m.Description = l.Description
}

// InvoiceModel is the persistence model for invoices.
type InvoiceModel struct {
	CompanyAggregateModel
	CountryID     uuid.UUID                `gorm:"type:uuid;not null;index"`
	InvoiceNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoice_company_number,priority:2"`
	Series        accounting.InvoiceSeries `gorm:"type:varchar(10);not null;index"`
	CustomerID    uuid.UUID                `gorm:"type:uuid;not null;index"`
	CustomerName  string                   `gorm:"type:varchar(200);not null"`
	Total         decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Subtotal      decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	TaxTotal      decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	LedgerEntryID *uuid.UUID               `gorm:"type:uuid;index"`
	CommissionID  *uuid.UUID               `gorm:"type:uuid;index"`
	DGIReference  string                   `gorm:"type:varchar(100)"`
	PaymentState  accounting.PaymentState  `gorm:"type:varchar(20);not null;default:'ISSUED';index"`
	IssuedAt      time.Time                `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *accounting.Invoice {
	return &accounting.Invoice{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		CountryID:            m.CountryID,
		InvoiceNumber:        m.InvoiceNumber,
		Series:               m.Series,
		CustomerID:           m.CustomerID,
		CustomerName:         m.CustomerName,
		Total:                m.Total,
		Subtotal:             m.Subtotal,
		TaxTotal:             m.TaxTotal,
		LedgerEntryID:        m.LedgerEntryID,
		CommissionID:         m.CommissionID,
		DGIReference:         m.DGIReference,
		PaymentState:         m.PaymentState,
		IssuedAt:             m.IssuedAt,
	}
}

// FromDomain populates the persistence model from a domain Invoice
func (m *InvoiceModel) FromDomain(i *accounting.Invoice) {
	m.FromDomainCompanyAggregateRoot(i.CompanyAggregateRoot)
	m.CountryID = i.CountryID
	m.InvoiceNumber = i.InvoiceNumber
	m.Series = i.Series
	m.CustomerID = i.CustomerID
	m.CustomerName = i.CustomerName
	m.Total = i.Total
	m.Subtotal = i.Subtotal
	m.TaxTotal = i.TaxTotal
	m.LedgerEntryID = i.LedgerEntryID
	m.CommissionID = i.CommissionID
	m.DGIReference = i.DGIReference
	m.PaymentState = i.PaymentState
	m.IssuedAt = i.IssuedAt
}

// PaymentModel is the persistence model for recorded collections.
type PaymentModel struct {
	AggregateModel
	InvoiceID       uuid.UUID                `gorm:"type:uuid;not null;index"`
	PaymentDate     time.Time                `gorm:"not null;index"`
	Amount          decimal.Decimal          `gorm:"type:decimal(18,4);not null"`
	Method          accounting.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference       string                   `gorm:"type:varchar(100)"`
	Notes           string                   `gorm:"type:text"`
	LedgerEntryID   *uuid.UUID               `gorm:"type:uuid;index"`
	CreatedByKind   accounting.ActorKind     `gorm:"type:varchar(10);not null"`
	CreatedByUserID *uuid.UUID               `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment
func (m *PaymentModel) ToDomain() *accounting.Payment {
	return &accounting.Payment{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		InvoiceID:         m.InvoiceID,
		PaymentDate:       m.PaymentDate,
		Amount:            m.Amount,
		Method:            m.Method,
		Reference:         m.Reference,
		Notes:             m.Notes,
		LedgerEntryID:     m.LedgerEntryID,
		CreatedBy: accounting.Actor{
			Kind:   m.CreatedByKind,
			UserID: m.CreatedByUserID,
		},
	}
}

// FromDomain populates the persistence model from a domain Payment
func (m *PaymentModel) FromDomain(p *accounting.Payment) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.InvoiceID = p.InvoiceID
	m.PaymentDate = p.PaymentDate
	m.Amount = p.Amount
	m.Method = p.Method
	m.Reference = p.Reference
	m.Notes = p.Notes
	m.LedgerEntryID = p.LedgerEntryID
	m.CreatedByKind = p.CreatedBy.Kind
	m.CreatedByUserID = p.CreatedBy.UserID
}

// CommissionModel is the persistence model for partner commissions.
type CommissionModel struct {
	CompanyAggregateModel
	PartnerID uuid.UUID                  `gorm:"type:uuid;not null;index"`
	State     accounting.CommissionState `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	InvoiceID *uuid.UUID                 `gorm:"type:uuid;index"`
	BilledAt  *time.Time
}

// TableName returns the table name for GORM
func (CommissionModel) TableName() string {
	return "commissions"
}

// ToDomain converts the persistence model to a domain Commission
func (m *CommissionModel) ToDomain() *accounting.Commission {
	return &accounting.Commission{
		CompanyAggregateRoot: m.ToDomainCompanyAggregateRoot(),
		PartnerID:            m.PartnerID,
		State:                m.State,
		InvoiceID:            m.InvoiceID,
		BilledAt:             m.BilledAt,
	}
}

// FromDomain populates the persistence model from a domain Commission
func (m *CommissionModel) FromDomain(c *accounting.Commission) {
	m.FromDomainCompanyAggregateRoot(c.CompanyAggregateRoot)
	m.PartnerID = c.PartnerID
	m.State = c.State
	m.InvoiceID = c.InvoiceID
	m.BilledAt = c.BilledAt
}
