package booking_models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Booking is a reservation of an item by a booker for an interval.
// ID is uuid.Nil until the repository assigns one on creation.
type Booking struct {
	ID        uuid.UUID
	Interval  Interval
	ItemID    uuid.UUID
	BookerID  uuid.UUID
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewBooking builds an unpersisted booking in WAITING.
func NewBooking(interval Interval, itemID, bookerID uuid.UUID) *Booking {
	return &Booking{
		Interval: interval,
		ItemID:   itemID,
		BookerID: bookerID,
		Status:   StatusWaiting,
	}
}

func (b *Booking) Persisted() bool {
	return b.ID != uuid.Nil
}

// Summary is the short projection shown next to items in listings.
type Summary struct {
	ID       uuid.UUID     `json:"id"`
	Start    LocalDateTime `json:"start"`
	End      LocalDateTime `json:"end"`
	BookerID uuid.UUID     `json:"bookerId"`
}

func (b *Booking) Summary() *Summary {
	return &Summary{
		ID:       b.ID,
		Start:    LocalDateTime(b.Interval.Start),
		End:      LocalDateTime(b.Interval.End),
		BookerID: b.BookerID,
	}
}

// SortByStartDesc orders bookings newest start first, ties broken by ID.
func SortByStartDesc(bookings []*Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		a, b := bookings[i], bookings[j]
		if !a.Interval.Start.Equal(b.Interval.Start) {
			return a.Interval.Start.After(b.Interval.Start)
		}
		return a.ID.String() > b.ID.String()
	})
}
