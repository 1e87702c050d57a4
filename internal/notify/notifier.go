package notify

import (
	"context"

	"github.com/google/uuid"
)

// Notifier delivers scheduling commands to a user's devices.
type Notifier interface {
	// Schedule replaces every pending alert of the user with alerts.
	Schedule(ctx context.Context, userID uuid.UUID, alerts []Alert) error
	Cancel(ctx context.Context, userID uuid.UUID, alertID string) error
	CancelAll(ctx context.Context, userID uuid.UUID) error
}

// Nop drops every command. Used when no broker is configured.
type Nop struct{}

func (Nop) Schedule(context.Context, uuid.UUID, []Alert) error { return nil }
func (Nop) Cancel(context.Context, uuid.UUID, string) error    { return nil }
func (Nop) CancelAll(context.Context, uuid.UUID) error         { return nil }
