// Package prelaunch decides whether the bot is inside its pre-launch window.
// The check is pure: it depends only on the configured launch date, the lead
// window in days, and the supplied clock reading.
package prelaunch

import "time"

// Gate holds the parsed launch configuration. A zero Gate is always open.
type Gate struct {
	launch   time.Time
	leadDays int
	valid    bool
}

// New parses launchDate ("YYYY-MM-DD", UTC). A missing or malformed date
// yields an always-open gate: the bot must not be taken down by a config
// typo, so the policy fails open.
func New(launchDate string, leadDays int) *Gate {
	g := &Gate{leadDays: leadDays}
	if launchDate == "" {
		return g
	}
	t, err := time.Parse("2006-01-02", launchDate)
	if err != nil {
		return g
	}
	g.launch = t.UTC()
	g.valid = true
	return g
}

// Status reports whether the gate is closed at the given instant and, if so,
// how many whole calendar days remain until the launch date. The count is a
// date-only difference and never negative.
func (g *Gate) Status(now time.Time) (closed bool, daysLeft int) {
	if !g.valid {
		return false, 0
	}
	enableAt := g.launch.AddDate(0, 0, -g.leadDays)
	now = now.UTC()
	if !now.Before(enableAt) {
		return false, 0
	}
	days := int(dateOnly(g.launch).Sub(dateOnly(now)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return true, days
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
