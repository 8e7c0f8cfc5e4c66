package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormPaymentRepository_Create(t *testing.T) {
	t.Run("inserts a payment row", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		payment, err := accounting.NewPayment(
			uuid.New(),
			time.Now(),
			decimal.NewFromInt(500),
			accounting.PaymentMethodTransfer,
			"giro 4412",
			"",
			accounting.SystemActor(),
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "payments"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Create(context.Background(), payment)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_SumByInvoice(t *testing.T) {
	t.Run("sums recorded amounts", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		invoiceID := uuid.New()
		rows := sqlmock.NewRows([]string{"coalesce"}).AddRow("732.50")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnRows(rows)

		sum, err := repo.SumByInvoice(context.Background(), invoiceID)
		require.NoError(t, err)
		assert.True(t, sum.Equal(decimal.RequireFromString("732.50")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero for an invoice with no payments", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		invoiceID := uuid.New()
		rows := sqlmock.NewRows([]string{"coalesce"}).AddRow("0")
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM "payments" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnRows(rows)

		sum, err := repo.SumByInvoice(context.Background(), invoiceID)
		require.NoError(t, err)
		assert.True(t, sum.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindUnposted(t *testing.T) {
	t.Run("joins invoices to scope by company", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		companyID := uuid.New()
		paymentID := uuid.New()
		invoiceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "invoice_id", "amount", "method", "created_by_kind", "version"}).
			AddRow(paymentID, invoiceID, "500", "CASH", "SYSTEM", 1)

		mock.ExpectQuery(`SELECT .* FROM "payments" JOIN invoices ON invoices\.id = payments\.invoice_id WHERE payments\.ledger_entry_id IS NULL AND invoices\.company_id = \$1 ORDER BY payments\.created_at ASC`).
			WithArgs(companyID).
			WillReturnRows(rows)

		payments, err := repo.FindUnposted(context.Background(), companyID)
		require.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, paymentID, payments[0].ID)
		assert.Equal(t, invoiceID, payments[0].InvoiceID)
		assert.False(t, payments[0].IsPosted())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns empty slice when everything is posted", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		companyID := uuid.New()
		mock.ExpectQuery(`SELECT .* FROM "payments" JOIN invoices ON invoices\.id = payments\.invoice_id`).
			WithArgs(companyID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		payments, err := repo.FindUnposted(context.Background(), companyID)
		require.NoError(t, err)
		assert.Empty(t, payments)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_DeleteByInvoice(t *testing.T) {
	t.Run("removes every payment of the invoice", func(t *testing.T) {
		gormDB, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPaymentRepository(gormDB)

		invoiceID := uuid.New()
		mock.ExpectExec(`DELETE FROM "payments" WHERE invoice_id = \$1`).
			WithArgs(invoiceID).
			WillReturnResult(sqlmock.NewResult(0, 2))

		err := repo.DeleteByInvoice(context.Background(), invoiceID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
