package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ActionKind classifies a remediation attempt.
type ActionKind string

const (
	ActionDiscount   ActionKind = "discount"
	ActionRMA        ActionKind = "rma"
	ActionRefund     ActionKind = "refund"
	ActionVoucher    ActionKind = "voucher"
	ActionRedelivery ActionKind = "redelivery"
)

// KnownActionKind reports whether kind is one of the recognized kinds.
func KnownActionKind(kind ActionKind) bool {
	switch kind {
	case ActionDiscount, ActionRMA, ActionRefund, ActionVoucher, ActionRedelivery:
		return true
	}
	return false
}

// Action is an immutable record of one remediation attempt. Denied actions
// are recorded too; the audit trail reflects what was attempted.
type Action struct {
	ID          uuid.UUID      `json:"id"`
	SessionID   uuid.UUID      `json:"session_id"`
	Kind        ActionKind     `json:"kind"`
	AmountCents *int64         `json:"amount_cents,omitempty"`
	Approved    bool           `json:"approved"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// ActionResult is returned to the caller after an action submission.
type ActionResult struct {
	Approved bool   `json:"approved"`
	Notice   string `json:"notice"`
	Ref      string `json:"ref,omitempty"`
}

// ActionRepository defines the interface for action storage
type ActionRepository interface {
	Create(ctx context.Context, action *Action) error
}
