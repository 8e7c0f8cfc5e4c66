package accounting

import (
	"context"
	"errors"
	"testing"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountResolverResolve(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("resolves an active account", func(t *testing.T) {
		account, err := accounting.NewAccount(companyID, accounting.AccountCodeReceivable, "Deudores por ventas")
		require.NoError(t, err)

		accountRepo := new(MockAccountRepository)
		accountRepo.On("FindByCode", ctx, companyID, accounting.AccountCodeReceivable).Return(account, nil)

		resolved, err := NewAccountResolver(accountRepo).Resolve(ctx, companyID, accounting.AccountCodeReceivable)
		require.NoError(t, err)
		assert.Equal(t, account.ID, resolved.ID)
	})

	t.Run("misses hard-fail with the code in the error", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("FindByCode", ctx, companyID, "tax-payable").Return(nil, shared.ErrNotFound)

		_, err := NewAccountResolver(accountRepo).Resolve(ctx, companyID, "tax-payable")
		require.Error(t, err)
		assert.ErrorIs(t, err, accounting.ErrAccountNotFound)
		assert.Contains(t, err.Error(), "tax-payable")
	})

	t.Run("inactive accounts resolve as not found", func(t *testing.T) {
		account, err := accounting.NewAccount(companyID, "cash", "Caja")
		require.NoError(t, err)
		account.Active = false

		accountRepo := new(MockAccountRepository)
		accountRepo.On("FindByCode", ctx, companyID, "cash").Return(account, nil)

		_, err = NewAccountResolver(accountRepo).Resolve(ctx, companyID, "cash")
		assert.ErrorIs(t, err, accounting.ErrAccountNotFound)
	})

	t.Run("storage errors are not converted to misses", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("FindByCode", ctx, companyID, "cash").Return(nil, errors.New("timeout"))

		_, err := NewAccountResolver(accountRepo).Resolve(ctx, companyID, "cash")
		require.Error(t, err)
		assert.NotErrorIs(t, err, accounting.ErrAccountNotFound)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewAccountResolver(new(MockAccountRepository)).Resolve(ctx, companyID, "")
		require.Error(t, err)
	})
}

func TestAccountResolverResolveAll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("resolves every code", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		for _, code := range []string{"cash", "bank"} {
			account, err := accounting.NewAccount(companyID, code, code)
			require.NoError(t, err)
			accountRepo.On("FindByCode", ctx, companyID, code).Return(account, nil)
		}

		accounts, err := NewAccountResolver(accountRepo).ResolveAll(ctx, companyID, "cash", "bank")
		require.NoError(t, err)
		assert.Len(t, accounts, 2)
	})

	t.Run("first miss aborts", func(t *testing.T) {
		accountRepo := new(MockAccountRepository)
		accountRepo.On("FindByCode", ctx, companyID, "cash").Return(nil, shared.ErrNotFound)

		_, err := NewAccountResolver(accountRepo).ResolveAll(ctx, companyID, "cash", "bank")
		assert.ErrorIs(t, err, accounting.ErrAccountNotFound)
		accountRepo.AssertNotCalled(t, "FindByCode", ctx, companyID, "bank")
	})
}
