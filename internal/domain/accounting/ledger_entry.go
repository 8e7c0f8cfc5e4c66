package accounting

import (
	"fmt"
	"time"

	"github.com/facturas/backend/internal/domain/shared"
	"github.com/facturas/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus represents the status of a ledger entry
type EntryStatus string

const (
	EntryStatusConfirmed EntryStatus = "CONFIRMED" // Posted and immutable
	EntryStatusVoided    EntryStatus = "VOIDED"    // Marked void (kept for audit when not hard-deleted)
)

// IsValid checks if the status is a valid EntryStatus
func (s EntryStatus) IsValid() bool {
	return s == EntryStatusConfirmed || s == EntryStatusVoided
}

// String returns the string representation of EntryStatus
func (s EntryStatus) String() string {
	return string(s)
}

// DocumentType tags the kind of source document behind a ledger entry
type DocumentType string

const (
	DocumentTypeInvoice DocumentType = "INVOICE"
	DocumentTypePayment DocumentType = "PAYMENT"
)

// IsValid checks if the document type is valid
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeInvoice || t == DocumentTypePayment
}

// DocumentRef is a structured pointer to the supporting document of an entry
type DocumentRef struct {
	DocumentType DocumentType `json:"document_type"`
	SourceID     uuid.UUID    `json:"source_id"`
	SourceNumber string       `json:"source_number"`
}

// IsValid checks structural consistency of the reference
func (r DocumentRef) IsValid() bool {
	return r.DocumentType.IsValid() && r.SourceID != uuid.Nil && r.SourceNumber != ""
}

// LedgerLine is one debit or credit movement belonging to exactly one entry.
// Exactly one of Debit/Credit is nonzero; the other is exactly zero.
type LedgerLine struct {
	ID           uuid.UUID       `json:"id"`
	EntryID      uuid.UUID       `json:"entry_id"`
	AccountID    uuid.UUID       `json:"account_id"`
	AccountLabel string          `json:"account_label"` // Denormalized code+name for display
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	Description  string          `json:"description"`
}

// IsDebit returns true if the line moves the debit side
func (l *LedgerLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// LineSpec describes one movement of an entry to be posted
type LineSpec struct {
	AccountID    uuid.UUID
	AccountLabel string
	Debit        decimal.Decimal
	Credit       decimal.Decimal
	Description  string
}

// validate enforces the single-sided movement rule
func (s LineSpec) validate() error {
	if s.AccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_LINE", "Ledger line requires an account")
	}
	if s.Debit.IsNegative() || s.Credit.IsNegative() {
		return ErrUnbalancedEntry
	}
	debitSet := s.Debit.IsPositive()
	creditSet := s.Credit.IsPositive()
	if debitSet == creditSet {
		// Both zero or both nonzero
		return ErrUnbalancedEntry
	}
	return nil
}

// DebitLine builds a debit movement spec
func DebitLine(accountID uuid.UUID, label string, amount decimal.Decimal, description string) LineSpec {
	return LineSpec{AccountID: accountID, AccountLabel: label, Debit: amount, Credit: decimal.Zero, Description: description}
}

// CreditLine builds a credit movement spec
func CreditLine(accountID uuid.UUID, label string, amount decimal.Decimal, description string) LineSpec {
	return LineSpec{AccountID: accountID, AccountLabel: label, Debit: decimal.Zero, Credit: amount, Description: description}
}

// LedgerEntry is a balanced double-entry accounting record (header + lines).
// It exclusively owns its lines: either the entry and all lines exist, or
// none do. Immutable once confirmed except for deletion during rollback.
type LedgerEntry struct {
	shared.CompanyAggregateRoot
	CountryID   uuid.UUID    `json:"country_id"`
	EntryNumber string       `json:"entry_number"` // Unique per company, monotonically increasing
	Date        time.Time    `json:"date"`
	Description string       `json:"description"`
	Reference   string       `json:"reference"` // Correlates the entry to its source document
	Status      EntryStatus  `json:"status"`
	DocumentRef DocumentRef  `json:"document_ref"`
	CreatedBy   Actor        `json:"created_by"`
	Lines       []LedgerLine `json:"lines"`
}

// NewLedgerEntry validates the balance invariant and builds a confirmed
// entry with its lines. The entry number is assigned separately by the
// allocator because a storage conflict may force reallocation.
func NewLedgerEntry(
	companyID uuid.UUID,
	countryID uuid.UUID,
	date time.Time,
	description string,
	reference string,
	docRef DocumentRef,
	lines []LineSpec,
	actor Actor,
) (*LedgerEntry, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if !docRef.IsValid() {
		return nil, shared.NewDomainError("INVALID_DOCUMENT_REF", "Document reference is incomplete")
	}
	if !actor.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Acting identity is not valid")
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("ledger entry requires at least one line: %w", ErrUnbalancedEntry)
	}

	totalDebit := valueobject.ZeroUYU()
	totalCredit := valueobject.ZeroUYU()
	for _, spec := range lines {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		totalDebit = totalDebit.MustAdd(valueobject.NewMoneyUYU(spec.Debit))
		totalCredit = totalCredit.MustAdd(valueobject.NewMoneyUYU(spec.Credit))
	}
	// Exact equality to the currency's minimal unit, no rounding tolerance
	if !totalDebit.Equals(totalCredit) {
		return nil, fmt.Errorf("debits %s != credits %s: %w", totalDebit.String(), totalCredit.String(), ErrUnbalancedEntry)
	}

	entry := &LedgerEntry{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CountryID:            countryID,
		Date:                 date,
		Description:          description,
		Reference:            reference,
		Status:               EntryStatusConfirmed,
		DocumentRef:          docRef,
		CreatedBy:            actor,
	}
	entry.Lines = make([]LedgerLine, 0, len(lines))
	for _, spec := range lines {
		entry.Lines = append(entry.Lines, LedgerLine{
			ID:           uuid.New(),
			EntryID:      entry.ID,
			AccountID:    spec.AccountID,
			AccountLabel: spec.AccountLabel,
			Debit:        spec.Debit,
			Credit:       spec.Credit,
			Description:  spec.Description,
		})
	}
	return entry, nil
}

// AssignEntryNumber sets the allocated per-company number. Called by the
// poster before each insert attempt; the store's uniqueness constraint
// turns a concurrent collision into ErrEntryNumberConflict.
func (e *LedgerEntry) AssignEntryNumber(number string) error {
	if number == "" {
		return shared.NewDomainError("INVALID_ENTRY_NUMBER", "Entry number cannot be empty")
	}
	e.EntryNumber = number
	return nil
}

// TotalDebit sums the debit side across all lines
func (e *LedgerEntry) TotalDebit() valueobject.Money {
	total := valueobject.ZeroUYU()
	for _, l := range e.Lines {
		total = total.MustAdd(valueobject.NewMoneyUYU(l.Debit))
	}
	return total
}

// TotalCredit sums the credit side across all lines
func (e *LedgerEntry) TotalCredit() valueobject.Money {
	total := valueobject.ZeroUYU()
	for _, l := range e.Lines {
		total = total.MustAdd(valueobject.NewMoneyUYU(l.Credit))
	}
	return total
}

// IsBalanced reports whether debits equal credits exactly
func (e *LedgerEntry) IsBalanced() bool {
	return e.TotalDebit().Equals(e.TotalCredit())
}

// IsConfirmed returns true if the entry is confirmed
func (e *LedgerEntry) IsConfirmed() bool {
	return e.Status == EntryStatusConfirmed
}
