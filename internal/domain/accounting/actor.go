package accounting

import (
	"github.com/facturas/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ActorKind distinguishes who created a ledger record
type ActorKind string

const (
	ActorKindUser   ActorKind = "USER"   // A human operator
	ActorKindSystem ActorKind = "SYSTEM" // Automated posting by the platform itself
)

// IsValid checks if the actor kind is valid
func (k ActorKind) IsValid() bool {
	return k == ActorKindUser || k == ActorKindSystem
}

// String returns the string representation of ActorKind
func (k ActorKind) String() string {
	return string(k)
}

// Actor is the acting identity recorded on ledger entries and payments.
// Automated postings use the distinguished system variant rather than a
// sentinel user id, so audit queries can separate manual from automated
// work without string comparison.
type Actor struct {
	Kind   ActorKind  `json:"kind"`
	UserID *uuid.UUID `json:"user_id,omitempty"`
}

// SystemActor returns the reserved identity for automated postings
func SystemActor() Actor {
	return Actor{Kind: ActorKindSystem}
}

// UserActor returns the identity of a human operator
func UserActor(userID uuid.UUID) (Actor, error) {
	if userID == uuid.Nil {
		return Actor{}, shared.NewDomainError("INVALID_ACTOR", "User actor requires a user ID")
	}
	return Actor{Kind: ActorKindUser, UserID: &userID}, nil
}

// IsSystem returns true for the automated-posting identity
func (a Actor) IsSystem() bool {
	return a.Kind == ActorKindSystem
}

// IsValid checks structural consistency of the actor
func (a Actor) IsValid() bool {
	switch a.Kind {
	case ActorKindUser:
		return a.UserID != nil && *a.UserID != uuid.Nil
	case ActorKindSystem:
		return a.UserID == nil
	}
	return false
}
