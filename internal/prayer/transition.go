package prayer

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// ErrTooEarly is matched by every *TooEarlyError.
var ErrTooEarly = errors.New("prayer window has not opened")

// TooEarlyError rejects a mark made before the slot's gate time.
type TooEarlyError struct {
	GateTime string
}

func (e *TooEarlyError) Error() string {
	return fmt.Sprintf("This prayer hasn't started yet (%s).", e.GateTime)
}

func (e *TooEarlyError) Is(target error) bool { return target == ErrTooEarly }

// Transition decides the status that follows a tap on a prayer.
//
// A Prayed or Late prayer is unmarked back to Pending with no time check.
// A Pending or Missed prayer is marked: rejected with *TooEarlyError before
// the gate time, Late once the end time has passed, Prayed otherwise.
func Transition(current model.PrayerStatus, slot model.SlotConfig, r *Resolver, now time.Time) (model.PrayerStatus, error) {
	if current.Completed() {
		return model.StatusPending, nil
	}

	gate := slot.GateTime()
	if !r.HasCrossed(now, gate) {
		return current, &TooEarlyError{GateTime: gate}
	}
	if r.HasCrossed(now, slot.EndTime) {
		return model.StatusLate, nil
	}
	return model.StatusPrayed, nil
}

// AutoMiss marks every still-Pending slot of today whose end time has passed
// as Missed. The input is not modified; changed is false when nothing moved,
// in which case the returned history is the input itself.
func AutoMiss(h model.History, today string, settings model.Settings, r *Resolver, now time.Time) (out model.History, changed bool) {
	out = h
	for _, cfg := range settings.PrayerTimes {
		if h.Status(today, cfg.ID) != model.StatusPending {
			continue
		}
		if !r.HasCrossed(now, cfg.EndTime) {
			continue
		}
		if !changed {
			out = h.Clone()
			changed = true
		}
		out.Set(today, cfg.ID, model.StatusMissed)
	}
	return out, changed
}
