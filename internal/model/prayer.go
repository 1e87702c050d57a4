package model

// PrayerStatus is the state of one prayer slot on one civil date.
type PrayerStatus string

const (
	StatusPending PrayerStatus = "Pending"
	StatusPrayed  PrayerStatus = "Prayed"
	StatusMissed  PrayerStatus = "Missed"
	StatusLate    PrayerStatus = "Late"
)

// Completed reports whether the status counts toward a full day.
func (s PrayerStatus) Completed() bool {
	return s == StatusPrayed || s == StatusLate
}

func (s PrayerStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPrayed, StatusMissed, StatusLate:
		return true
	}
	return false
}

// SlotID identifies one of the five daily prayers ("1".."5").
type SlotID string

const (
	Fajr    SlotID = "1"
	Dhuhr   SlotID = "2"
	Asr     SlotID = "3"
	Maghrib SlotID = "4"
	Isha    SlotID = "5"
)

type Slot struct {
	ID   SlotID
	Name string // remote row name, e.g. "Fajr"
}

// Slots is the fixed, ordered set of daily prayers.
var Slots = []Slot{
	{ID: Fajr, Name: "Fajr"},
	{ID: Dhuhr, Name: "Dhuhr"},
	{ID: Asr, Name: "Asr"},
	{ID: Maghrib, Name: "Maghrib"},
	{ID: Isha, Name: "Isha"},
}

// SlotCount is the number of prayers needed for a full day.
const SlotCount = 5

func SlotName(id SlotID) (string, bool) {
	for _, s := range Slots {
		if s.ID == id {
			return s.Name, true
		}
	}
	return "", false
}

func SlotByName(name string) (SlotID, bool) {
	for _, s := range Slots {
		if s.Name == name {
			return s.ID, true
		}
	}
	return "", false
}

// Prayer is a slot with today's status and configured times, as shown to clients.
type Prayer struct {
	ID         SlotID       `json:"id"`
	Name       string       `json:"name"`
	Status     PrayerStatus `json:"status"`
	StartTime  string       `json:"startTime,omitempty"`
	MosqueTime string       `json:"mosqueTime,omitempty"`
	EndTime    string       `json:"endTime,omitempty"`
}
