// Package progress holds the rules for learning sessions, streaks and
// achievements. It has no storage dependencies.
package progress

import "time"

// Session is the streak state of one learning module
type Session struct {
	LastSession   *time.Time
	StreakDays    int
	TotalSessions int
}

// DayGap returns the number of calendar days from prev to now in loc.
// Negative gaps are reported as 0.
func DayGap(prev, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	py, pm, pd := prev.In(loc).Date()
	ny, nm, nd := now.In(loc).Date()

	// Dates at UTC midnight differ by whole days regardless of DST in loc.
	p := time.Date(py, pm, pd, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)

	gap := int(n.Sub(p).Hours() / 24)
	if gap < 0 {
		return 0
	}
	return gap
}

// Advance applies one learning event at now to s and returns the new state.
// The gap is measured against s.LastSession as it was before this event.
func Advance(s Session, now time.Time, loc *time.Location) Session {
	next := s
	next.LastSession = &now

	if s.LastSession == nil {
		next.StreakDays = 1
		next.TotalSessions = 1
		return next
	}

	switch gap := DayGap(*s.LastSession, now, loc); {
	case gap == 0:
		// same day, counters unchanged
	case gap == 1:
		next.StreakDays = s.StreakDays + 1
		next.TotalSessions = s.TotalSessions + 1
	default:
		next.StreakDays = 1
		next.TotalSessions = s.TotalSessions + 1
	}

	return next
}
