package notify

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
)

type AlertKind string

const (
	AlertStart    AlertKind = "start"
	AlertReminder AlertKind = "reminder"
)

// Alert is one scheduled local notification.
type Alert struct {
	ID     string       `json:"id"`
	SlotID model.SlotID `json:"slot_id"`
	Kind   AlertKind    `json:"kind"`
	Title  string       `json:"title"`
	Body   string       `json:"body"`
	At     time.Time    `json:"at"`
}

func StartAlertID(id model.SlotID) string    { return fmt.Sprintf("%s_start", id) }
func ReminderAlertID(id model.SlotID) string { return fmt.Sprintf("%s_reminder", id) }

// BuildSchedule computes the start and ending-soon alerts of date. Alerts
// that would fire at or before now are dropped.
func BuildSchedule(settings model.Settings, date string, r *prayer.Resolver, now time.Time) []Alert {
	var alerts []Alert
	for _, cfg := range settings.PrayerTimes {
		name, ok := model.SlotName(cfg.ID)
		if !ok {
			continue
		}

		if start, err := r.At(date, cfg.GateTime()); err == nil && start.After(now) {
			body := fmt.Sprintf("It is now time for %s.", name)
			if cfg.MosqueTime != "" {
				body = fmt.Sprintf("Jamaat time for %s.", name)
			}
			alerts = append(alerts, Alert{
				ID:     StartAlertID(cfg.ID),
				SlotID: cfg.ID,
				Kind:   AlertStart,
				Title:  fmt.Sprintf("Time for %s", name),
				Body:   body,
				At:     start,
			})
		}

		end, err := r.At(date, cfg.EndTime)
		if err != nil {
			continue
		}
		remindAt := end.Add(-time.Duration(settings.ReminderLeadTime) * time.Minute)
		if remindAt.After(now) {
			alerts = append(alerts, Alert{
				ID:     ReminderAlertID(cfg.ID),
				SlotID: cfg.ID,
				Kind:   AlertReminder,
				Title:  fmt.Sprintf("%s Ending Soon", name),
				Body:   fmt.Sprintf("%d minutes remaining for %s!", settings.ReminderLeadTime, name),
				At:     remindAt,
			})
		}
	}
	return alerts
}
