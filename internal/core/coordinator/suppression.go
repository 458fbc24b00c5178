package coordinator

import "time"

// suppression is the echo filter armed after every remote write.
// The zero value is Idle.
type suppression struct {
	armed    bool
	deadline time.Time
	expected uint64
}

func (s *suppression) arm(deadline time.Time, fp uint64) {
	s.armed = true
	s.deadline = deadline
	s.expected = fp
}

func (s *suppression) clear() {
	*s = suppression{}
}

// active reports whether the window is armed and not yet expired at now.
func (s *suppression) active(now time.Time) bool {
	return s.armed && now.Before(s.deadline)
}

func (s *suppression) matches(fp uint64) bool {
	return s.armed && s.expected == fp
}

// String names the state for logs.
func (s *suppression) String() string {
	if s.armed {
		return "armed"
	}
	return "idle"
}
