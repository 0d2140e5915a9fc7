package services

import (
	"strings"

	"github.com/username/honorarios/src/processors"
)

// PinnedYearResolver returns a pinned year for known emails (demo accounts) and
// the clock's year for everybody else.
type PinnedYearResolver struct {
	clock  processors.Clock
	pinned map[string]int
}

func NewPinnedYearResolver(clock processors.Clock, pinned map[string]int) *PinnedYearResolver {
	if clock == nil {
		clock = processors.SystemClock
	}
	normalized := make(map[string]int, len(pinned))
	for email, year := range pinned {
		normalized[strings.ToLower(strings.TrimSpace(email))] = year
	}
	return &PinnedYearResolver{clock: clock, pinned: normalized}
}

func (r *PinnedYearResolver) EffectiveYear(email string) int {
	if year, ok := r.pinned[strings.ToLower(strings.TrimSpace(email))]; ok {
		return year
	}
	return r.clock.Now().Year()
}
