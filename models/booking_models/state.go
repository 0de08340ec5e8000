package booking_models

import (
	"strings"
	"time"

	"github.com/Irina-Gavrilina/shareit/utils"
)

// State is a named view over a user's bookings.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
)

var states = map[State]struct{}{
	StateAll:      {},
	StateCurrent:  {},
	StatePast:     {},
	StateFuture:   {},
	StateWaiting:  {},
	StateRejected: {},
}

// ParseState maps a case-insensitive name to a State. Empty input means ALL.
func ParseState(raw string) (State, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return StateAll, nil
	}
	state := State(name)
	if _, ok := states[state]; !ok {
		return "", utils.UnavailableBooking("invalid booking state: %s", raw)
	}
	return state, nil
}

// Matches reports whether b belongs to the view at instant now.
func (s State) Matches(b *Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return b.Interval.Contains(now)
	case StatePast:
		return !b.Interval.End.After(now)
	case StateFuture:
		return !b.Interval.Start.Before(now)
	case StateWaiting:
		return b.Status == StatusWaiting
	case StateRejected:
		return b.Status == StatusRejected
	}
	return false
}
