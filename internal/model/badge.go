package model

import "sort"

type BadgeID string

const (
	BadgeFirstStep      BadgeID = "first_step"
	BadgeFajrWarrior    BadgeID = "fajr_warrior"
	BadgeLateButPresent BadgeID = "late_but_present"
	BadgeStreakMaster   BadgeID = "streak_master"
)

// BadgeType selects how progress toward a badge is measured.
type BadgeType string

const (
	BadgeTypeStreak       BadgeType = "streak"
	BadgeTypeTotalPrayers BadgeType = "total_prayers"
	BadgeTypeLatePrayers  BadgeType = "late_prayers"
	BadgeTypeFajrStreak   BadgeType = "fajr_streak"
)

type BadgeDefinition struct {
	ID          BadgeID   `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Requirement int       `json:"requirement"`
	Type        BadgeType `json:"type"`
}

var Badges = []BadgeDefinition{
	{
		ID:          BadgeFirstStep,
		Title:       "First Step",
		Description: "Complete your first full day of 5 prayers.",
		Requirement: 1,
		Type:        BadgeTypeTotalPrayers,
	},
	{
		ID:          BadgeFajrWarrior,
		Title:       "Fajr Warrior",
		Description: "Pray Fajr on time for 7 days in a row.",
		Requirement: 7,
		Type:        BadgeTypeFajrStreak,
	},
	{
		ID:          BadgeLateButPresent,
		Title:       "Late but Present",
		Description: "Mark 10 prayers as Late. Consistency matters!",
		Requirement: 10,
		Type:        BadgeTypeLatePrayers,
	},
	{
		ID:          BadgeStreakMaster,
		Title:       "Streak Master",
		Description: "Resist the urge to break a 30 day streak.",
		Requirement: 30,
		Type:        BadgeTypeStreak,
	},
}

func BadgeByID(id BadgeID) (BadgeDefinition, bool) {
	for _, b := range Badges {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDefinition{}, false
}

// EarnedBadges is append-only: ids are added once and never removed.
type EarnedBadges map[BadgeID]struct{}

func NewEarnedBadges(ids ...BadgeID) EarnedBadges {
	e := make(EarnedBadges, len(ids))
	for _, id := range ids {
		e[id] = struct{}{}
	}
	return e
}

func (e EarnedBadges) Has(id BadgeID) bool {
	_, ok := e[id]
	return ok
}

// Add reports false when id was already earned.
func (e EarnedBadges) Add(id BadgeID) bool {
	if e.Has(id) {
		return false
	}
	e[id] = struct{}{}
	return true
}

func (e EarnedBadges) List() []BadgeID {
	out := make([]BadgeID, 0, len(e))
	for id := range e {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (e EarnedBadges) Clone() EarnedBadges {
	return NewEarnedBadges(e.List()...)
}
