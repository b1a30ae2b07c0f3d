// Package humanize renders absolute timestamps as the relative phrases used in
// briefing tables ("Tomorrow at 20:45 (Tue 02.Mar)").
package humanize

import (
	"fmt"
	"time"
)

// When formats t relative to now. Both instants must already be expressed in
// the briefing timezone; the day difference is taken between calendar dates,
// not raw durations, so a fixture at 00:10 tomorrow is "Tomorrow" rather than
// "in 7 hours".
func When(t, now time.Time) string {
	days := dayDiff(t, now)
	hhmm := t.Format("15:04")
	suffix := "(" + t.Format("Mon 02.Jan") + ")"

	switch {
	case days == -1:
		return fmt.Sprintf("Yesterday at %s %s", hhmm, suffix)
	case days < -1:
		// Past events should be filtered upstream; never crash on one.
		return fmt.Sprintf("On %s at %s", t.Format("Mon 02.Jan"), hhmm)
	case days == 0:
		return fmt.Sprintf("Today at %s %s", hhmm, suffix)
	case days == 1:
		return fmt.Sprintf("Tomorrow at %s %s", hhmm, suffix)
	case days <= 7:
		return fmt.Sprintf("Next %s at %s %s", t.Weekday().String(), hhmm, suffix)
	case days <= 13:
		return fmt.Sprintf("In %d days at %s %s", days, hhmm, suffix)
	default:
		return fmt.Sprintf("In %d weeks at %s %s", days/7, hhmm, suffix)
	}
}

// dayDiff returns the whole-day calendar difference between t and now.
func dayDiff(t, now time.Time) int {
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	a := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	b := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(a.Sub(b).Hours() / 24)
}
