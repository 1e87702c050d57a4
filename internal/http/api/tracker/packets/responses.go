package packets

import (
	"github.com/Nixie-Tech-LLC/salah/internal/model"
	"github.com/Nixie-Tech-LLC/salah/internal/prayer"
	"github.com/Nixie-Tech-LLC/salah/internal/tracker"
)

type StreakResponse struct {
	Current           int    `json:"current"`
	Longest           int    `json:"longest"`
	LastCompletedDate string `json:"last_completed_date,omitempty"`
}

func NewStreakResponse(s model.StreakState) StreakResponse {
	return StreakResponse{Current: s.Current, Longest: s.Longest, LastCompletedDate: s.LastCompletedDate}
}

type TodayResponse struct {
	Date     string         `json:"date"`
	Prayers  []model.Prayer `json:"prayers"`
	Progress prayer.Ratio   `json:"progress"`
	Streak   StreakResponse `json:"streak"`
}

type ToggleResponse struct {
	ID       model.SlotID            `json:"id"`
	Date     string                  `json:"date"`
	Previous model.PrayerStatus      `json:"previous"`
	Status   model.PrayerStatus      `json:"status"`
	Phase    tracker.Phase           `json:"phase"`
	Streak   StreakResponse          `json:"streak"`
	Unlocked []model.BadgeDefinition `json:"unlocked"`
}

type DayResponse struct {
	Date      string         `json:"date"`
	Prayers   []model.Prayer `json:"prayers"`
	Completed int            `json:"completed"`
	FullDay   bool           `json:"full_day"`
}

type HistoryResponse struct {
	Days []DayResponse `json:"days"`
}

type StatsResponse struct {
	Streak StreakResponse `json:"streak"`
	Today  prayer.Ratio   `json:"today"`
	Weekly []int          `json:"weekly"`
}

type BadgesResponse struct {
	Badges []tracker.BadgeStatus `json:"badges"`
}

// NewBadgeResponse carries the badge awaiting its celebration, if any.
type NewBadgeResponse struct {
	Badge *model.BadgeDefinition `json:"badge"`
}

type ResetResponse struct {
	Backup string `json:"backup,omitempty"`
}
