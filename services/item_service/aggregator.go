package item_service

import (
	"time"

	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/google/uuid"
)

// Availability is an item's most recent past and nearest upcoming booking.
type Availability struct {
	Last *booking_models.Summary
	Next *booking_models.Summary
}

// Summarize picks Last (greatest start before now) and Next (smallest start
// after now) among the blocking bookings of a single item.
func Summarize(bookings []*booking_models.Booking, now time.Time) Availability {
	var last, next *booking_models.Booking
	for _, b := range bookings {
		if !b.Status.Blocking() {
			continue
		}
		start := b.Interval.Start
		switch {
		case start.Before(now):
			if last == nil || start.After(last.Interval.Start) {
				last = b
			}
		case start.After(now):
			if next == nil || start.Before(next.Interval.Start) {
				next = b
			}
		}
	}

	var a Availability
	if last != nil {
		a.Last = last.Summary()
	}
	if next != nil {
		a.Next = next.Summary()
	}
	return a
}

// GroupByItem partitions a batched fetch by item ID.
func GroupByItem(bookings []*booking_models.Booking) map[uuid.UUID][]*booking_models.Booking {
	grouped := make(map[uuid.UUID][]*booking_models.Booking)
	for _, b := range bookings {
		grouped[b.ItemID] = append(grouped[b.ItemID], b)
	}
	return grouped
}
