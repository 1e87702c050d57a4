package prayer

import "github.com/Nixie-Tech-LLC/salah/internal/model"

// RecomputeStreak folds today's record into the streak. An incomplete day
// leaves the streak untouched; gaps are handled by ResetLapsedStreak.
func RecomputeStreak(s model.StreakState, h model.History, today string) model.StreakState {
	if !h.IsFullDay(today) {
		return s
	}
	if s.LastCompletedDate == today {
		return s
	}

	yesterday, err := AddDays(today, -1)
	if err == nil && s.LastCompletedDate != "" && s.LastCompletedDate == yesterday {
		s.Current++
	} else {
		s.Current = 1
	}
	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastCompletedDate = today
	return s
}

// ResetLapsedStreak zeroes Current when more than one civil day separates the
// last completed day from today. Longest is kept. It reports whether it reset.
func ResetLapsedStreak(s model.StreakState, today string) (model.StreakState, bool) {
	if s.LastCompletedDate == "" || s.LastCompletedDate == today {
		return s, false
	}
	gap, err := DaysBetween(s.LastCompletedDate, today)
	if err != nil {
		// unreadable marker: nothing can be continued from it
		if s.Current == 0 {
			return s, false
		}
		s.Current = 0
		return s, true
	}
	if gap <= 1 || s.Current == 0 {
		return s, false
	}
	s.Current = 0
	return s, true
}
