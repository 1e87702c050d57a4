package model

// StreakState tracks consecutive full days. Longest is never below Current.
type StreakState struct {
	Current           int    `json:"current"`
	Longest           int    `json:"longest"`
	LastCompletedDate string `json:"lastCompletedDate,omitempty"` // empty when absent
}
