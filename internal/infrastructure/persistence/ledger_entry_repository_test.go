package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func balancedEntry(t *testing.T, companyID uuid.UUID) *accounting.LedgerEntry {
	t.Helper()
	ar := uuid.New()
	revenue := uuid.New()
	entry, err := accounting.NewLedgerEntry(
		companyID,
		uuid.New(),
		time.Now(),
		"Factura A-10077 - Mercado del Este",
		"FACT-A-10077",
		accounting.DocumentRef{
			DocumentType: accounting.DocumentTypeInvoice,
			SourceID:     uuid.New(),
			SourceNumber: "A-10077",
		},
		[]accounting.LineSpec{
			accounting.DebitLine(ar, "accounts-receivable - Deudores por ventas", decimal.NewFromInt(1220), ""),
			accounting.CreditLine(revenue, "sales-revenue - Ventas", decimal.NewFromInt(1220), ""),
		},
		accounting.SystemActor(),
	)
	require.NoError(t, err)
	require.NoError(t, entry.AssignEntryNumber("ASI-00042"))
	return entry
}

func TestGormLedgerEntryRepository_CreateWithLines(t *testing.T) {
	t.Run("writes header and lines in one transaction", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLedgerEntryRepository(gormDB)

		entry := balancedEntry(t, uuid.New())

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "ledger_entries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO "ledger_lines"`).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := repo.CreateWithLines(context.Background(), entry)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps duplicate entry number to ErrEntryNumberConflict", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLedgerEntryRepository(gormDB)

		entry := balancedEntry(t, uuid.New())

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "ledger_entries"`).
			WillReturnError(gorm.ErrDuplicatedKey)
		mock.ExpectRollback()

		err := repo.CreateWithLines(context.Background(), entry)
		assert.ErrorIs(t, err, accounting.ErrEntryNumberConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLedgerEntryRepository_MaxEntryNumber(t *testing.T) {
	t.Run("returns the highest issued number", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLedgerEntryRepository(gormDB)

		companyID := uuid.New()
		rows := sqlmock.NewRows([]string{"entry_number"}).AddRow("ASI-00042")
		mock.ExpectQuery(`SELECT "entry_number" FROM "ledger_entries" WHERE company_id = \$1 ORDER BY length\(entry_number\) DESC, entry_number DESC LIMIT .*`).
			WithArgs(companyID, 1).
			WillReturnRows(rows)

		number, err := repo.MaxEntryNumber(context.Background(), companyID)
		require.NoError(t, err)
		assert.Equal(t, "ASI-00042", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty string when no entries exist", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLedgerEntryRepository(gormDB)

		companyID := uuid.New()
		mock.ExpectQuery(`SELECT "entry_number" FROM "ledger_entries" WHERE company_id = \$1 ORDER BY length\(entry_number\) DESC, entry_number DESC LIMIT .*`).
			WithArgs(companyID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"entry_number"}))

		number, err := repo.MaxEntryNumber(context.Background(), companyID)
		require.NoError(t, err)
		assert.Equal(t, "", number)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLedgerEntryRepository_FindByID(t *testing.T) {
	t.Run("maps missing entry to ErrNotFound", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLedgerEntryRepository(gormDB)

		entryID := uuid.New()
		mock.ExpectQuery(`SELECT \* FROM "ledger_entries" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(entryID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		entry, err := repo.FindByID(context.Background(), entryID)
		assert.Nil(t, entry)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormLedgerEntryRepository_DeleteWithLines(t *testing.T) {
	t.Run("deletes lines then header", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLedgerEntryRepository(gormDB)

		entryID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "ledger_lines" WHERE entry_id = \$1`).
			WithArgs(entryID).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(`DELETE FROM "ledger_entries" WHERE id = \$1`).
			WithArgs(entryID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.DeleteWithLines(context.Background(), entryID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports ErrNotFound when the header is missing", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormLedgerEntryRepository(gormDB)

		entryID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "ledger_lines" WHERE entry_id = \$1`).
			WithArgs(entryID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM "ledger_entries" WHERE id = \$1`).
			WithArgs(entryID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.DeleteWithLines(context.Background(), entryID)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
