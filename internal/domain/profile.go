package domain

import (
	"context"

	"github.com/google/uuid"
)

// RoleTrainer is the elevated role required by the admin summary.
const RoleTrainer = "trainer"

// Profile is the stored profile of a known user, carrying the role used for
// role-gated endpoints.
type Profile struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// ProfileRepository defines the interface for user profile storage
type ProfileRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*Profile, error)
}
