package prayer

import "github.com/Nixie-Tech-LLC/salah/internal/model"

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

func (p Progress) Reached() bool { return p.Current >= p.Total }

// BadgeProgress measures history against one badge definition.
func BadgeProgress(def model.BadgeDefinition, h model.History, currentStreak int) Progress {
	p := Progress{Total: def.Requirement}
	switch def.Type {
	case model.BadgeTypeStreak:
		p.Current = currentStreak
	case model.BadgeTypeLatePrayers:
		p.Current = countLate(h)
	case model.BadgeTypeTotalPrayers:
		p.Current = countFullDays(h)
	case model.BadgeTypeFajrStreak:
		p.Current = fajrStreak(h)
	}
	return p
}

// UnlockableBadges returns the badges not yet earned whose requirement is met,
// in definition order.
func UnlockableBadges(earned model.EarnedBadges, h model.History, currentStreak int) []model.BadgeID {
	var out []model.BadgeID
	for _, def := range model.Badges {
		if earned.Has(def.ID) {
			continue
		}
		if BadgeProgress(def, h, currentStreak).Reached() {
			out = append(out, def.ID)
		}
	}
	return out
}

func countLate(h model.History) int {
	n := 0
	for _, day := range h {
		for _, s := range day {
			if s == model.StatusLate {
				n++
			}
		}
	}
	return n
}

func countFullDays(h model.History) int {
	n := 0
	for date := range h {
		if h.IsFullDay(date) {
			n++
		}
	}
	return n
}

// fajrStreak walks back from the most recent recorded date and counts
// consecutive days with Fajr done. A missing calendar day breaks the run.
func fajrStreak(h model.History) int {
	n := 0
	prev := ""
	for _, date := range h.Dates() {
		if prev != "" {
			if gap, err := DaysBetween(date, prev); err != nil || gap != 1 {
				break
			}
		}
		if !h.Status(date, model.Fajr).Completed() {
			break
		}
		n++
		prev = date
	}
	return n
}
