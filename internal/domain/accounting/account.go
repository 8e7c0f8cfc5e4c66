package accounting

import (
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Semantic account codes the posting flows resolve against the chart of
// accounts. Resolution is always by exact code and never defaulted: posting
// against a wrong or missing account silently corrupts the ledger.
const (
	AccountCodeReceivable   = "accounts-receivable"
	AccountCodeSalesRevenue = "sales-revenue"
	AccountCodeTaxPayable   = "tax-payable"
	AccountCodeCash         = "cash"
	AccountCodeBank         = "bank"
	AccountCodeCardClearing = "card-clearing"
)

// Account is a chart-of-accounts entry. The chart is owned by an external
// store; this core only reads it.
type Account struct {
	shared.CompanyAggregateRoot
	Code   string `json:"code"`
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// NewAccount creates a chart-of-accounts entry
func NewAccount(companyID uuid.UUID, code, name string) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	return &Account{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Code:                 code,
		Name:                 name,
		Active:               true,
	}, nil
}

// Label returns the denormalized display label used on ledger lines
func (a *Account) Label() string {
	return a.Code + " - " + a.Name
}
