package deliverable

import (
	"fmt"
	"time"
)

const clockLayout = "3:04 PM"

// FormatDue renders due relative to now's calendar day, in now's location.
func FormatDue(due, now time.Time) string {
	due = due.In(now.Location())

	switch {
	case sameDay(due, now):
		return "Today, " + due.Format(clockLayout)
	case sameDay(due, now.AddDate(0, 0, 1)):
		return "Tomorrow, " + due.Format(clockLayout)
	case due.Year() != now.Year():
		return due.Format("Jan 2 2006, " + clockLayout)
	default:
		return due.Format("Jan 2, " + clockLayout)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// Remaining renders the time left until due as a two-unit countdown
// ("2d 4h", "3h 12m", "45s"). Past the due time it reads "overdue 1h 5m".
func Remaining(due, now time.Time) string {
	left := due.Sub(now)
	if left <= 0 {
		return "overdue " + span(-left)
	}

	return span(left)
}

func span(d time.Duration) string {
	d = d.Truncate(time.Second)

	days := int64(d / (24 * time.Hour))
	hours := int64(d/time.Hour) % 24
	minutes := int64(d/time.Minute) % 60
	seconds := int64(d/time.Second) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}
