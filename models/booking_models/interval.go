package booking_models

import (
	"time"

	"github.com/Irina-Gavrilina/shareit/utils"
)

// Interval is an immutable [Start, End) pair with Start strictly before End.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, utils.UnavailableBooking("booking start and end must be set")
	}
	if !start.Before(end) {
		return Interval{}, utils.UnavailableBooking("booking start %s must be before end %s",
			start.Format(DateTimeLayout), end.Format(DateTimeLayout))
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps is the half-open intersection test; touching endpoints do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && i.End.After(other.Start)
}

// Contains reports Start <= t <= End.
func (i Interval) Contains(t time.Time) bool {
	return !t.Before(i.Start) && !t.After(i.End)
}
