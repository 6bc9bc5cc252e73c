package analytics

import "fmt"

// Session is a labeled slice of the trading day. StartHour is inclusive
// and EndHour exclusive; a session with EndHour <= StartHour wraps past
// midnight.
type Session struct {
	Label     string
	StartHour int
	EndHour   int
}

// Contains reports whether the given hour of day falls in the session.
func (s Session) Contains(hour int) bool {
	if s.StartHour < s.EndHour {
		return hour >= s.StartHour && hour < s.EndHour
	}
	return hour >= s.StartHour || hour < s.EndHour
}

// DefaultSessions returns the built-in trading day split. The four
// sessions cover all 24 hours without overlap.
func DefaultSessions() []Session {
	return []Session{
		{Label: "Morning", StartHour: 5, EndHour: 11},
		{Label: "Midday", StartHour: 11, EndHour: 14},
		{Label: "Afternoon", StartHour: 14, EndHour: 18},
		{Label: "Evening", StartHour: 18, EndHour: 5},
	}
}

// sessionLabel resolves an hour to its session label. With a validated
// session set every hour matches; the last label is the fallback for a
// misconfigured set so the grouping stays total.
func sessionLabel(sessions []Session, hour int) string {
	for _, s := range sessions {
		if s.Contains(hour) {
			return s.Label
		}
	}
	return sessions[len(sessions)-1].Label
}

// ValidateSessions checks that the session set covers every hour of the
// day exactly once.
func ValidateSessions(sessions []Session) error {
	covered := make([]int, 24)
	for _, s := range sessions {
		for h := 0; h < 24; h++ {
			if s.Contains(h) {
				covered[h]++
			}
		}
	}
	for h, n := range covered {
		if n != 1 {
			return &sessionCoverageError{Hour: h, Matches: n}
		}
	}
	return nil
}

type sessionCoverageError struct {
	Hour    int
	Matches int
}

func (e *sessionCoverageError) Error() string {
	if e.Matches == 0 {
		return fmt.Sprintf("session config leaves hour %d uncovered", e.Hour)
	}
	return fmt.Sprintf("session config overlaps at hour %d", e.Hour)
}
