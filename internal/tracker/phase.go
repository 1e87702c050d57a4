package tracker

import (
	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// Phase is the state of a single mark action.
//
//	Idle -> Validating -> Applying -> Syncing -> Committed | RolledBack
//
// A rejected validation returns to Idle with nothing mutated.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseApplying   Phase = "applying"
	PhaseSyncing    Phase = "syncing"
	PhaseCommitted  Phase = "committed"
	PhaseRolledBack Phase = "rolled_back"
)

// MarkResult describes the outcome of one tap on a prayer.
type MarkResult struct {
	SlotID   model.SlotID       `json:"slot_id"`
	Date     string             `json:"date"`
	Previous model.PrayerStatus `json:"previous"`
	Status   model.PrayerStatus `json:"status"`
	Phase    Phase              `json:"phase"`
	Streak   model.StreakState  `json:"streak"`
	Unlocked []model.BadgeID    `json:"unlocked,omitempty"`
}
