package accounting

import (
	"context"
	"errors"
	"fmt"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountResolver looks up chart-of-accounts entries by semantic code.
// Resolution is strict: a missing or inactive account aborts the calling
// flow, because posting against a defaulted account corrupts the ledger.
type AccountResolver struct {
	accountRepo accounting.AccountRepository
}

// NewAccountResolver creates a new AccountResolver
func NewAccountResolver(accountRepo accounting.AccountRepository) *AccountResolver {
	return &AccountResolver{accountRepo: accountRepo}
}

// Resolve finds the active account with the exact code in the company's
// chart. Returns ErrAccountNotFound (carrying the code in the wrap) when
// the chart has no such account.
func (r *AccountResolver) Resolve(ctx context.Context, companyID uuid.UUID, code string) (*accounting.Account, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}

	account, err := r.accountRepo.FindByCode(ctx, companyID, code)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("account %q: %w", code, accounting.ErrAccountNotFound)
		}
		return nil, fmt.Errorf("failed to resolve account %q: %w", code, err)
	}
	if !account.Active {
		return nil, fmt.Errorf("account %q is inactive: %w", code, accounting.ErrAccountNotFound)
	}
	return account, nil
}

// ResolveAll resolves a set of codes, failing on the first miss. The
// returned map is keyed by code.
func (r *AccountResolver) ResolveAll(ctx context.Context, companyID uuid.UUID, codes ...string) (map[string]*accounting.Account, error) {
	accounts := make(map[string]*accounting.Account, len(codes))
	for _, code := range codes {
		account, err := r.Resolve(ctx, companyID, code)
		if err != nil {
			return nil, err
		}
		accounts[code] = account
	}
	return accounts, nil
}
