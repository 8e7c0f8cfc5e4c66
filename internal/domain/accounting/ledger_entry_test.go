package accounting

import (
	"testing"
	"time"

	"github.com/facturas/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocRef() DocumentRef {
	return DocumentRef{
		DocumentType: DocumentTypeInvoice,
		SourceID:     uuid.New(),
		SourceNumber: "FACT-1042",
	}
}

func TestNewLedgerEntry(t *testing.T) {
	companyID := uuid.New()
	countryID := uuid.New()
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	receivable := uuid.New()
	revenue := uuid.New()
	tax := uuid.New()

	t.Run("creates balanced entry with valid inputs", func(t *testing.T) {
		lines := []LineSpec{
			DebitLine(receivable, "accounts-receivable - Deudores por ventas", decimal.NewFromFloat(122.00), "Invoice FACT-1042"),
			CreditLine(revenue, "sales-revenue - Ventas", decimal.NewFromFloat(100.00), "Invoice FACT-1042"),
			CreditLine(tax, "tax-payable - IVA a pagar", decimal.NewFromFloat(22.00), "Invoice FACT-1042"),
		}

		entry, err := NewLedgerEntry(companyID, countryID, date, "Venta FACT-1042", "FACT-1042", testDocRef(), lines, SystemActor())
		require.NoError(t, err)
		require.NotNil(t, entry)

		assert.Equal(t, companyID, entry.CompanyID)
		assert.Equal(t, countryID, entry.CountryID)
		assert.Equal(t, EntryStatusConfirmed, entry.Status)
		assert.Empty(t, entry.EntryNumber)
		assert.Equal(t, "FACT-1042", entry.Reference)
		assert.True(t, entry.CreatedBy.IsSystem())
		assert.NotEmpty(t, entry.ID)
		assert.Equal(t, 1, entry.GetVersion())

		require.Len(t, entry.Lines, 3)
		for _, line := range entry.Lines {
			assert.Equal(t, entry.ID, line.EntryID)
			assert.NotEmpty(t, line.ID)
		}
		assert.True(t, entry.IsBalanced())
		assert.True(t, entry.TotalDebit().Equals(valueobject.NewMoneyUYU(decimal.NewFromFloat(122.00))))
		assert.True(t, entry.TotalCredit().Equals(valueobject.NewMoneyUYU(decimal.NewFromFloat(122.00))))
	})

	t.Run("fails when debits and credits differ", func(t *testing.T) {
		lines := []LineSpec{
			DebitLine(receivable, "ar", decimal.NewFromFloat(122.00), ""),
			CreditLine(revenue, "rev", decimal.NewFromFloat(100.00), ""),
		}

		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", testDocRef(), lines, SystemActor())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnbalancedEntry)
	})

	t.Run("fails on sub-unit imbalance without tolerance", func(t *testing.T) {
		lines := []LineSpec{
			DebitLine(receivable, "ar", decimal.RequireFromString("100.01"), ""),
			CreditLine(revenue, "rev", decimal.RequireFromString("100.00"), ""),
		}

		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", testDocRef(), lines, SystemActor())
		assert.ErrorIs(t, err, ErrUnbalancedEntry)
	})

	t.Run("fails with no lines", func(t *testing.T) {
		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", testDocRef(), nil, SystemActor())
		assert.ErrorIs(t, err, ErrUnbalancedEntry)
	})

	t.Run("fails when a line sets both sides", func(t *testing.T) {
		lines := []LineSpec{
			{AccountID: receivable, Debit: decimal.NewFromFloat(50), Credit: decimal.NewFromFloat(50)},
			CreditLine(revenue, "rev", decimal.Zero, ""),
		}

		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", testDocRef(), lines, SystemActor())
		assert.ErrorIs(t, err, ErrUnbalancedEntry)
	})

	t.Run("fails when a line sets neither side", func(t *testing.T) {
		lines := []LineSpec{
			{AccountID: receivable, Debit: decimal.Zero, Credit: decimal.Zero},
		}

		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", testDocRef(), lines, SystemActor())
		assert.ErrorIs(t, err, ErrUnbalancedEntry)
	})

	t.Run("fails with negative amounts", func(t *testing.T) {
		lines := []LineSpec{
			DebitLine(receivable, "ar", decimal.NewFromFloat(-10), ""),
			CreditLine(revenue, "rev", decimal.NewFromFloat(-10), ""),
		}

		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", testDocRef(), lines, SystemActor())
		assert.ErrorIs(t, err, ErrUnbalancedEntry)
	})

	t.Run("fails with empty company", func(t *testing.T) {
		lines := []LineSpec{
			DebitLine(receivable, "ar", decimal.NewFromFloat(10), ""),
			CreditLine(revenue, "rev", decimal.NewFromFloat(10), ""),
		}

		_, err := NewLedgerEntry(uuid.Nil, countryID, date, "", "FACT-1", testDocRef(), lines, SystemActor())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Company ID cannot be empty")
	})

	t.Run("fails with incomplete document reference", func(t *testing.T) {
		lines := []LineSpec{
			DebitLine(receivable, "ar", decimal.NewFromFloat(10), ""),
			CreditLine(revenue, "rev", decimal.NewFromFloat(10), ""),
		}
		badRef := DocumentRef{DocumentType: DocumentTypeInvoice, SourceID: uuid.Nil, SourceNumber: "FACT-1"}

		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", badRef, lines, SystemActor())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Document reference is incomplete")
	})

	t.Run("fails with invalid actor", func(t *testing.T) {
		lines := []LineSpec{
			DebitLine(receivable, "ar", decimal.NewFromFloat(10), ""),
			CreditLine(revenue, "rev", decimal.NewFromFloat(10), ""),
		}

		_, err := NewLedgerEntry(companyID, countryID, date, "", "FACT-1", testDocRef(), lines, Actor{Kind: ActorKindUser})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Acting identity is not valid")
	})
}

func TestAssignEntryNumber(t *testing.T) {
	entry := &LedgerEntry{}

	t.Run("assigns a number", func(t *testing.T) {
		err := entry.AssignEntryNumber("ASI-00042")
		require.NoError(t, err)
		assert.Equal(t, "ASI-00042", entry.EntryNumber)
	})

	t.Run("rejects empty number", func(t *testing.T) {
		err := entry.AssignEntryNumber("")
		require.Error(t, err)
	})

	t.Run("allows reassignment after a conflict", func(t *testing.T) {
		require.NoError(t, entry.AssignEntryNumber("ASI-00042"))
		require.NoError(t, entry.AssignEntryNumber("ASI-00043"))
		assert.Equal(t, "ASI-00043", entry.EntryNumber)
	})
}

func TestLedgerLineSides(t *testing.T) {
	debit := LedgerLine{Debit: decimal.NewFromFloat(10), Credit: decimal.Zero}
	credit := LedgerLine{Debit: decimal.Zero, Credit: decimal.NewFromFloat(10)}

	assert.True(t, debit.IsDebit())
	assert.False(t, credit.IsDebit())
}

func TestDocumentRefIsValid(t *testing.T) {
	tests := []struct {
		name  string
		ref   DocumentRef
		valid bool
	}{
		{"invoice ref", DocumentRef{DocumentTypeInvoice, uuid.New(), "FACT-1"}, true},
		{"payment ref", DocumentRef{DocumentTypePayment, uuid.New(), "FACT-1"}, true},
		{"unknown type", DocumentRef{DocumentType("RECEIPT"), uuid.New(), "FACT-1"}, false},
		{"missing source id", DocumentRef{DocumentTypeInvoice, uuid.Nil, "FACT-1"}, false},
		{"missing number", DocumentRef{DocumentTypeInvoice, uuid.New(), ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.ref.IsValid())
		})
	}
}
