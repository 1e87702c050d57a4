package model

import "sort"

// DateLayout is the civil date format used as history keys.
const DateLayout = "2006-01-02"

// DayRecord maps a slot to its status on one date. Missing slots are Pending.
type DayRecord map[SlotID]PrayerStatus

// History maps a civil date (YYYY-MM-DD) to that day's record.
type History map[string]DayRecord

func (h History) Status(date string, id SlotID) PrayerStatus {
	if s, ok := h[date][id]; ok {
		return s
	}
	return StatusPending
}

// Set records a status, creating the day lazily.
func (h History) Set(date string, id SlotID, status PrayerStatus) {
	day, ok := h[date]
	if !ok {
		day = make(DayRecord, SlotCount)
		h[date] = day
	}
	day[id] = status
}

// Clone deep-copies the history so snapshots don't alias the live maps.
func (h History) Clone() History {
	out := make(History, len(h))
	for date, day := range h {
		d := make(DayRecord, len(day))
		for id, s := range day {
			d[id] = s
		}
		out[date] = d
	}
	return out
}

// CompletedCount counts Prayed/Late slots on date.
func (h History) CompletedCount(date string) int {
	n := 0
	for _, s := range h[date] {
		if s.Completed() {
			n++
		}
	}
	return n
}

// IsFullDay reports whether every one of the five slots is Prayed or Late on date.
func (h History) IsFullDay(date string) bool {
	for _, slot := range Slots {
		if !h.Status(date, slot.ID).Completed() {
			return false
		}
	}
	return true
}

// Dates returns the recorded dates, most recent first.
func (h History) Dates() []string {
	dates := make([]string, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}
