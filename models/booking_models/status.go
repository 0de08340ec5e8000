package booking_models

// Status is the lifecycle status of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

// Blocking reports whether a booking in this status occupies its interval.
// Overlap checks and item availability summaries only consider blocking bookings.
func (s Status) Blocking() bool {
	return s == StatusWaiting || s == StatusApproved
}

// BlockingStatuses lists the statuses for which Blocking is true.
func BlockingStatuses() []Status {
	return []Status{StatusWaiting, StatusApproved}
}

func (s Status) Valid() bool {
	switch s {
	case StatusWaiting, StatusApproved, StatusRejected, StatusCanceled:
		return true
	}
	return false
}
