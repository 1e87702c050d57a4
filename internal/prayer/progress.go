package prayer

import "github.com/Nixie-Tech-LLC/salah/internal/model"

type Ratio struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

func TodayRatio(h model.History, today string) Ratio {
	return Ratio{Completed: h.CompletedCount(today), Total: model.SlotCount}
}

// WeeklyProgress returns completed-prayer counts for the seven days ending today, oldest first.
func WeeklyProgress(h model.History, today string) []int {
	counts := make([]int, 0, 7)
	for i := 6; i >= 0; i-- {
		date, err := AddDays(today, -i)
		if err != nil {
			counts = append(counts, 0)
			continue
		}
		counts = append(counts, h.CompletedCount(date))
	}
	return counts
}
