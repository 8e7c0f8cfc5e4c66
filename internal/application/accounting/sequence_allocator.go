package accounting

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/facturas/backend/internal/domain/accounting"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	entryNumberPrefix = "ASI-"
	entryNumberFormat = "ASI-%05d"
)

// SequenceAllocator issues per-company ledger entry numbers of the form
// ASI-00042. It reads the highest issued number and returns the increment;
// the storage layer's uniqueness constraint on (company, entry number)
// catches concurrent allocations of the same value, and LedgerPoster
// re-allocates on that conflict.
type SequenceAllocator struct {
	entryRepo accounting.LedgerEntryRepository
	logger    *zap.Logger
}

// NewSequenceAllocator creates a new SequenceAllocator
func NewSequenceAllocator(entryRepo accounting.LedgerEntryRepository, logger *zap.Logger) *SequenceAllocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SequenceAllocator{entryRepo: entryRepo, logger: logger}
}

// Next returns the next entry number for the company. ASI-00001 when the
// company has no entries yet. A stored number whose suffix does not parse
// is a data-quality problem: the allocator falls back to a timestamp-derived
// number so posting can proceed, and logs the corrupt value.
func (a *SequenceAllocator) Next(ctx context.Context, companyID uuid.UUID) (string, error) {
	last, err := a.entryRepo.MaxEntryNumber(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("failed to read last entry number: %w", err)
	}
	if last == "" {
		return fmt.Sprintf(entryNumberFormat, 1), nil
	}

	suffix := strings.TrimPrefix(last, entryNumberPrefix)
	n, parseErr := strconv.Atoi(suffix)
	if parseErr != nil || suffix == last || n < 0 {
		fallback := fmt.Sprintf(entryNumberFormat, time.Now().Unix()%1_000_000_000)
		a.logger.Warn("Corrupt entry number in sequence, falling back to timestamp-derived number",
			zap.String("company_id", companyID.String()),
			zap.String("stored_number", last),
			zap.String("fallback_number", fallback))
		return fallback, nil
	}

	return fmt.Sprintf(entryNumberFormat, n+1), nil
}
