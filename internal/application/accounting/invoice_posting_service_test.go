package accounting

import (
	"context"
	"testing"
	"time"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testInvoice(companyID uuid.UUID) *accounting.Invoice {
	return &accounting.Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CountryID:            uuid.New(),
		InvoiceNumber:        "A-10077",
		Series:               accounting.SeriesSales,
		CustomerID:           uuid.New(),
		CustomerName:         "Barraca Central SA",
		Total:                decimal.NewFromFloat(1220.00),
		Subtotal:             decimal.NewFromFloat(1000.00),
		TaxTotal:             decimal.NewFromFloat(220.00),
		PaymentState:         accounting.PaymentStateIssued,
		IssuedAt:             time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func stubChartOfAccounts(t *testing.T, accountRepo *MockAccountRepository, companyID uuid.UUID, codes ...string) map[string]*accounting.Account {
	t.Helper()
	accounts := make(map[string]*accounting.Account, len(codes))
	for _, code := range codes {
		account, err := accounting.NewAccount(companyID, code, code)
		require.NoError(t, err)
		accountRepo.On("FindByCode", mock.Anything, companyID, code).Return(account, nil)
		accounts[code] = account
	}
	return accounts
}

func newPostingService(invoiceRepo *MockInvoiceRepository, accountRepo *MockAccountRepository, entryRepo *MockLedgerEntryRepository) *InvoicePostingService {
	return NewInvoicePostingService(
		invoiceRepo,
		NewAccountResolver(accountRepo),
		newPoster(entryRepo),
		zap.NewNop(),
	)
}

func TestPostInvoiceIssued(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("posts the three-line entry and links it", func(t *testing.T) {
		invoice := testInvoice(companyID)

		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("SetLedgerEntry", ctx, invoice.ID, mock.AnythingOfType("uuid.UUID")).Return(nil)

		accountRepo := new(MockAccountRepository)
		accounts := stubChartOfAccounts(t, accountRepo, companyID,
			accounting.AccountCodeReceivable,
			accounting.AccountCodeSalesRevenue,
			accounting.AccountCodeTaxPayable)

		entryRepo := new(MockLedgerEntryRepository)
		entryRepo.On("MaxEntryNumber", ctx, companyID).Return("", nil)
		var captured *accounting.LedgerEntry
		entryRepo.On("CreateWithLines", ctx, mock.Anything).Run(func(args mock.Arguments) {
			captured = args.Get(1).(*accounting.LedgerEntry)
		}).Return(nil)

		entry, err := newPostingService(invoiceRepo, accountRepo, entryRepo).PostInvoiceIssued(ctx, companyID, invoice.ID)
		require.NoError(t, err)
		require.NotNil(t, captured)

		assert.Equal(t, "ASI-00001", entry.EntryNumber)
		assert.Equal(t, "FACT-A-10077", entry.Reference)
		assert.True(t, entry.CreatedBy.IsSystem())
		assert.Equal(t, accounting.DocumentTypeInvoice, entry.DocumentRef.DocumentType)

		require.Len(t, entry.Lines, 3)
		assert.Equal(t, accounts[accounting.AccountCodeReceivable].ID, entry.Lines[0].AccountID)
		assert.True(t, entry.Lines[0].Debit.Equal(decimal.NewFromFloat(1220.00)))
		assert.Equal(t, accounts[accounting.AccountCodeSalesRevenue].ID, entry.Lines[1].AccountID)
		assert.True(t, entry.Lines[1].Credit.Equal(decimal.NewFromFloat(1000.00)))
		assert.Equal(t, accounts[accounting.AccountCodeTaxPayable].ID, entry.Lines[2].AccountID)
		assert.True(t, entry.Lines[2].Credit.Equal(decimal.NewFromFloat(220.00)))

		assert.True(t, invoice.IsPosted())
		invoiceRepo.AssertExpectations(t)
	})

	t.Run("omits the tax line for zero-tax invoices", func(t *testing.T) {
		invoice := testInvoice(companyID)
		invoice.Total = decimal.NewFromFloat(1000.00)
		invoice.TaxTotal = decimal.Zero

		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)
		invoiceRepo.On("SetLedgerEntry", ctx, invoice.ID, mock.Anything).Return(nil)

		accountRepo := new(MockAccountRepository)
		stubChartOfAccounts(t, accountRepo, companyID,
			accounting.AccountCodeReceivable,
			accounting.AccountCodeSalesRevenue,
			accounting.AccountCodeTaxPayable)

		entryRepo := new(MockLedgerEntryRepository)
		entryRepo.On("MaxEntryNumber", ctx, companyID).Return("", nil)
		entryRepo.On("CreateWithLines", ctx, mock.Anything).Return(nil)

		entry, err := newPostingService(invoiceRepo, accountRepo, entryRepo).PostInvoiceIssued(ctx, companyID, invoice.ID)
		require.NoError(t, err)
		assert.Len(t, entry.Lines, 2)
		assert.True(t, entry.IsBalanced())
	})

	t.Run("rejects an already posted invoice", func(t *testing.T) {
		invoice := testInvoice(companyID)
		entryID := uuid.New()
		invoice.LedgerEntryID = &entryID

		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

		_, err := newPostingService(invoiceRepo, new(MockAccountRepository), new(MockLedgerEntryRepository)).PostInvoiceIssued(ctx, companyID, invoice.ID)
		assert.ErrorIs(t, err, accounting.ErrAlreadyPosted)
	})

	t.Run("missing invoice", func(t *testing.T) {
		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("FindByID", ctx, mock.Anything).Return(nil, shared.ErrNotFound)

		_, err := newPostingService(invoiceRepo, new(MockAccountRepository), new(MockLedgerEntryRepository)).PostInvoiceIssued(ctx, companyID, uuid.New())
		assert.ErrorIs(t, err, accounting.ErrInvoiceNotFound)
	})

	t.Run("treats another company's invoice as missing", func(t *testing.T) {
		invoice := testInvoice(uuid.New())

		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

		entryRepo := new(MockLedgerEntryRepository)

		_, err := newPostingService(invoiceRepo, new(MockAccountRepository), entryRepo).PostInvoiceIssued(ctx, companyID, invoice.ID)
		assert.ErrorIs(t, err, accounting.ErrInvoiceNotFound)
		entryRepo.AssertNotCalled(t, "CreateWithLines", mock.Anything, mock.Anything)
	})

	t.Run("account miss aborts before any ledger write", func(t *testing.T) {
		invoice := testInvoice(companyID)

		invoiceRepo := new(MockInvoiceRepository)
		invoiceRepo.On("FindByID", ctx, invoice.ID).Return(invoice, nil)

		accountRepo := new(MockAccountRepository)
		accountRepo.On("FindByCode", ctx, companyID, accounting.AccountCodeReceivable).Return(nil, shared.ErrNotFound)

		entryRepo := new(MockLedgerEntryRepository)

		_, err := newPostingService(invoiceRepo, accountRepo, entryRepo).PostInvoiceIssued(ctx, companyID, invoice.ID)
		assert.ErrorIs(t, err, accounting.ErrAccountNotFound)
		entryRepo.AssertNotCalled(t, "CreateWithLines", mock.Anything, mock.Anything)
		invoiceRepo.AssertNotCalled(t, "SetLedgerEntry", mock.Anything, mock.Anything, mock.Anything)
	})
}
