package tracker

import (
	"errors"
	"fmt"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// ErrSlotNotConfigured aborts a mark before any mutation.
var ErrSlotNotConfigured = errors.New("prayer configuration missing")

// SyncError reports a mark whose optimistic changes were rolled back.
type SyncError struct {
	Status model.PrayerStatus // the status that could not be saved
	Phase  Phase              // where it failed: applying or syncing
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("Failed to save %s. Changes reverted. %v", e.Status, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
