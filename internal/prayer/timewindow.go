package prayer

import (
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/salah/internal/model"
)

// DefaultZone is the reference zone prayer windows are evaluated in.
const DefaultZone = "Asia/Karachi"

const clockLayout = "15:04"

// Resolver answers time-of-day questions in one fixed reference zone, not the
// caller's zone, so a traveling user's windows don't shift.
type Resolver struct {
	loc      *time.Location
	fallback bool
}

// NewResolver loads zone. If the zone database can't provide it the resolver
// silently uses time.Local instead.
func NewResolver(zone string) *Resolver {
	loc, err := time.LoadLocation(zone)
	if err != nil || zone == "" {
		return &Resolver{loc: time.Local, fallback: true}
	}
	return &Resolver{loc: loc}
}

// NewResolverIn builds a resolver for an already loaded location.
func NewResolverIn(loc *time.Location) *Resolver {
	return &Resolver{loc: loc}
}

func (r *Resolver) Location() *time.Location { return r.loc }

// Fallback reports whether the reference zone could not be loaded.
func (r *Resolver) Fallback() bool { return r.fallback }

// ClockTime renders now as zero-padded 24h HH:mm in the reference zone.
func (r *Resolver) ClockTime(now time.Time) string {
	return now.In(r.loc).Format(clockLayout)
}

// HasCrossed reports whether the reference-zone time of day is at or past target.
// Both sides are fixed-width HH:mm, so string order is chronological order.
func (r *Resolver) HasCrossed(now time.Time, target string) bool {
	return r.ClockTime(now) >= target
}

// Today is the civil date of now in the reference zone.
func (r *Resolver) Today(now time.Time) string {
	return now.In(r.loc).Format(model.DateLayout)
}

// At returns the instant at which date's HH:mm occurs in the reference zone.
func (r *Resolver) At(date, hhmm string) (time.Time, error) {
	d, err := time.ParseInLocation(model.DateLayout, date, r.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}
	mins, err := model.MinutesSinceMidnight(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), mins/60, mins%60, 0, 0, r.loc), nil
}

// DaysBetween counts whole civil days from a to b (b - a). Dates are
// compared as calendar dates in UTC so daylight-saving shifts never change
// the count.
func DaysBetween(a, b string) (int, error) {
	ta, err := time.Parse(model.DateLayout, a)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", a, err)
	}
	tb, err := time.Parse(model.DateLayout, b)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", b, err)
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}

// AddDays shifts a civil date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", date, err)
	}
	return t.AddDate(0, 0, n).Format(model.DateLayout), nil
}
