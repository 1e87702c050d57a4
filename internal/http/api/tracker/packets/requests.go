package packets

// body for toggling reminders
type NotificationsRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// query for the history listing
type HistoryQuery struct {
	Days int `form:"days" binding:"omitempty,min=1,max=365"`
}
