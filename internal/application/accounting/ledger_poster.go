package accounting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxPostAttempts bounds the reallocate-and-retry loop on entry number
// collisions between concurrent posters.
const maxPostAttempts = 3

// PostRequest describes one balanced ledger entry to be written
type PostRequest struct {
	CompanyID   uuid.UUID
	CountryID   uuid.UUID
	Date        time.Time
	Description string
	Reference   string
	DocumentRef accounting.DocumentRef
	Lines       []accounting.LineSpec
	Actor       accounting.Actor
}

// LedgerPoster validates, numbers and persists ledger entries. The balance
// check happens in the LedgerEntry constructor before any storage work;
// header and lines go to storage in a single transaction, so a failed write
// leaves nothing behind.
type LedgerPoster struct {
	entryRepo accounting.LedgerEntryRepository
	sequence  *SequenceAllocator
	logger    *zap.Logger
}

// NewLedgerPoster creates a new LedgerPoster
func NewLedgerPoster(entryRepo accounting.LedgerEntryRepository, sequence *SequenceAllocator, logger *zap.Logger) *LedgerPoster {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LedgerPoster{entryRepo: entryRepo, sequence: sequence, logger: logger}
}

// Post writes one confirmed ledger entry. ErrUnbalancedEntry when the lines
// do not balance (nothing written); ErrPersistenceFailure when storage
// rejects the entry, including the case where three consecutive entry
// numbers collided with concurrent posters.
func (p *LedgerPoster) Post(ctx context.Context, req PostRequest) (*accounting.LedgerEntry, error) {
	entry, err := accounting.NewLedgerEntry(
		req.CompanyID,
		req.CountryID,
		req.Date,
		req.Description,
		req.Reference,
		req.DocumentRef,
		req.Lines,
		req.Actor,
	)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= maxPostAttempts; attempt++ {
		number, err := p.sequence.Next(ctx, req.CompanyID)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, accounting.ErrPersistenceFailure)
		}
		if err := entry.AssignEntryNumber(number); err != nil {
			return nil, err
		}

		err = p.entryRepo.CreateWithLines(ctx, entry)
		if err == nil {
			p.logger.Info("Ledger entry posted",
				zap.String("company_id", req.CompanyID.String()),
				zap.String("entry_number", number),
				zap.String("reference", req.Reference),
				zap.Int("lines", len(entry.Lines)))
			return entry, nil
		}

		if errors.Is(err, accounting.ErrEntryNumberConflict) {
			p.logger.Warn("Entry number conflict, reallocating",
				zap.String("company_id", req.CompanyID.String()),
				zap.String("entry_number", number),
				zap.Int("attempt", attempt))
			lastErr = err
			continue
		}

		return nil, fmt.Errorf("failed to persist ledger entry: %v: %w", err, accounting.ErrPersistenceFailure)
	}

	return nil, fmt.Errorf("entry number conflicts exhausted %d attempts: %v: %w",
		maxPostAttempts, lastErr, accounting.ErrPersistenceFailure)
}
