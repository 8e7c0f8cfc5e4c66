package accounting

import (
	"context"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock implementation of AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*accounting.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

// MockLedgerEntryRepository is a mock implementation of LedgerEntryRepository
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) CreateWithLines(ctx context.Context, entry *accounting.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockLedgerEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.LedgerEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter accounting.LedgerEntryFilter) ([]accounting.LedgerEntry, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).([]accounting.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) CountByCompany(ctx context.Context, companyID uuid.UUID, filter accounting.LedgerEntryFilter) (int64, error) {
	args := m.Called(ctx, companyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerEntryRepository) MaxEntryNumber(ctx context.Context, companyID uuid.UUID) (string, error) {
	args := m.Called(ctx, companyID)
	return args.String(0), args.Error(1)
}

func (m *MockLedgerEntryRepository) DeleteWithLines(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*accounting.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *accounting.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdatePaymentState(ctx context.Context, invoiceID uuid.UUID, state accounting.PaymentState) error {
	args := m.Called(ctx, invoiceID, state)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SetLedgerEntry(ctx context.Context, invoiceID, entryID uuid.UUID) error {
	args := m.Called(ctx, invoiceID, entryID)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteWithItems(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *accounting.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]accounting.Payment, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]accounting.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SetLedgerEntry(ctx context.Context, paymentID, entryID uuid.UUID) error {
	args := m.Called(ctx, paymentID, entryID)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindUnposted(ctx context.Context, companyID uuid.UUID) ([]accounting.Payment, error) {
	args := m.Called(ctx, companyID)
	return args.Get(0).([]accounting.Payment), args.Error(1)
}

func (m *MockPaymentRepository) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// MockCommissionRepository is a mock implementation of CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByBilledInvoice(ctx context.Context, invoiceID uuid.UUID) ([]accounting.Commission, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]accounting.Commission), args.Error(1)
}

func (m *MockCommissionRepository) Save(ctx context.Context, commission *accounting.Commission) error {
	args := m.Called(ctx, commission)
	return args.Error(0)
}

// passthroughTxRunner runs the closure on the caller's context, standing
// in for a real transaction scope in service tests.
type passthroughTxRunner struct{}

func (passthroughTxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
