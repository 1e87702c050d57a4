package trackertest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Nixie-Tech-LLC/salah/internal/notify"
)

// Notifier records every command it receives.
type Notifier struct {
	mu         sync.Mutex
	Scheduled  [][]notify.Alert
	Cancelled  []string
	CancelAlls int
}

func (n *Notifier) Schedule(_ context.Context, _ uuid.UUID, alerts []notify.Alert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Scheduled = append(n.Scheduled, alerts)
	return nil
}

func (n *Notifier) Cancel(_ context.Context, _ uuid.UUID, alertID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Cancelled = append(n.Cancelled, alertID)
	return nil
}

func (n *Notifier) CancelAll(_ context.Context, _ uuid.UUID) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.CancelAlls++
	return nil
}
