package accounting

import "github.com/facturas/backend/internal/domain/shared"

// Typed errors for the accounting core. Callers branch on these with
// errors.Is; the HTTP layer maps the embedded code to a status.
//
// AccountResolver and ledger-posting failures always abort the calling
// operation. ErrPaymentLedgerFailure is the one partial-success error:
// the payment row and invoice state it reports on have already committed.
var (
	ErrAccountNotFound       = shared.NewDomainError("ACCOUNT_NOT_FOUND", "Account code not found in company chart of accounts")
	ErrUnbalancedEntry       = shared.NewDomainError("UNBALANCED_ENTRY", "Ledger entry debits and credits do not balance")
	ErrPersistenceFailure    = shared.NewDomainError("PERSISTENCE_FAILURE", "Ledger entry could not be persisted")
	ErrInvoiceNotFound       = shared.NewDomainError("INVOICE_NOT_FOUND", "Invoice not found")
	ErrPaymentPersistFailure = shared.NewDomainError("PAYMENT_PERSIST_FAILURE", "Payment could not be persisted")
	ErrPaymentLedgerFailure  = shared.NewDomainError("PAYMENT_LEDGER_FAILURE", "Payment recorded but ledger posting failed; reconciliation required")
	ErrRollbackNotAllowed    = shared.NewDomainError("ROLLBACK_NOT_ALLOWED", "Document is not eligible for rollback")
	ErrLedgerDeleteFailure   = shared.NewDomainError("LEDGER_DELETE_FAILURE", "Ledger entry could not be deleted")
	ErrCompensationFailure   = shared.NewDomainError("COMPENSATION_FAILURE", "Dependent records could not be reverted")
	ErrEntryNumberConflict   = shared.NewDomainError("ENTRY_NUMBER_CONFLICT", "Entry number already allocated for this company")
	ErrAlreadyPosted         = shared.NewDomainError("ALREADY_POSTED", "Document already has a ledger entry")
)
