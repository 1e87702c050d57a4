package tracker

import (
	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
)

// BadgeStatus is a badge definition with the user's progress toward it.
type BadgeStatus struct {
	model.BadgeDefinition
	Progress prayer.Progress `json:"progress"`
	Earned   bool            `json:"earned"`
}

func (t *Tracker) Today() string {
	today, _ := t.today()
	return today
}

// TodayPrayers lists the five prayers in fixed order with today's statuses.
func (t *Tracker) TodayPrayers() []model.Prayer {
	t.mu.Lock()
	defer t.mu.Unlock()

	today, _ := t.today()
	out := make([]model.Prayer, 0, len(model.Slots))
	for _, slot := range model.Slots {
		p := model.Prayer{ID: slot.ID, Name: slot.Name, Status: t.history.Status(today, slot.ID)}
		if cfg, ok := t.settings.Slot(slot.ID); ok {
			p.StartTime = cfg.StartTime
			p.MosqueTime = cfg.MosqueTime
			p.EndTime = cfg.EndTime
		}
		out = append(out, p)
	}
	return out
}

func (t *Tracker) Streak() model.StreakState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streak
}

func (t *Tracker) Settings() model.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settings.Clone()
}

func (t *Tracker) History() model.History {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.history.Clone()
}

func (t *Tracker) Earned() []model.BadgeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.earned.List()
}

func (t *Tracker) BadgeProgress(id model.BadgeID) (prayer.Progress, bool) {
	def, ok := model.BadgeByID(id)
	if !ok {
		return prayer.Progress{}, false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return prayer.BadgeProgress(def, t.history, t.streak.Current), true
}

func (t *Tracker) Badges() []BadgeStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]BadgeStatus, 0, len(model.Badges))
	for _, def := range model.Badges {
		out = append(out, BadgeStatus{
			BadgeDefinition: def,
			Progress:        prayer.BadgeProgress(def, t.history, t.streak.Current),
			Earned:          t.earned.Has(def.ID),
		})
	}
	return out
}

func (t *Tracker) TodayRatio() prayer.Ratio {
	t.mu.Lock()
	defer t.mu.Unlock()
	today, _ := t.today()
	return prayer.TodayRatio(t.history, today)
}

func (t *Tracker) WeeklyProgress() []int {
	t.mu.Lock()
	defer t.mu.Unlock()
	today, _ := t.today()
	return prayer.WeeklyProgress(t.history, today)
}

// TakeNewBadge returns the most recently unlocked badge once, then clears it.
func (t *Tracker) TakeNewBadge() (model.BadgeID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.newBadge
	t.newBadge = ""
	return id, id != ""
}
