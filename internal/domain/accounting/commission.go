package accounting

import (
	"time"

	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CommissionState represents the billing state of a partner commission
type CommissionState string

const (
	CommissionStatePending CommissionState = "PENDING" // Earned, not yet billed
	CommissionStateBilled  CommissionState = "BILLED"  // Included in a commission invoice
)

// IsValid checks if the state is a valid CommissionState
func (s CommissionState) IsValid() bool {
	return s == CommissionStatePending || s == CommissionStateBilled
}

// Commission links a partner to a billable commission. It is owned by the
// external commission store; the only mutation this core performs is
// reverting it to pending when its billing invoice is rolled back.
type Commission struct {
	shared.CompanyAggregateRoot
	PartnerID uuid.UUID       `json:"partner_id"`
	State     CommissionState `json:"state"`
	InvoiceID *uuid.UUID      `json:"invoice_id"` // The commission invoice that billed it
	BilledAt  *time.Time      `json:"billed_at"`
}

// IsBilled returns true if the commission is tied to a billing invoice
func (c *Commission) IsBilled() bool {
	return c.State == CommissionStateBilled
}

// RevertToPending clears the billing link and date, returning the
// commission to the unbilled pool.
func (c *Commission) RevertToPending() error {
	if !c.IsBilled() {
		return shared.NewDomainError("INVALID_STATE", "Commission is not billed")
	}
	c.State = CommissionStatePending
	c.InvoiceID = nil
	c.BilledAt = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}
