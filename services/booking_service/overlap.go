package booking_service

import (
	"context"
	"fmt"

	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/google/uuid"
)

// Overlaps reports whether a blocking booking of itemID intersects candidate.
// WAITING and APPROVED bookings block; REJECTED and CANCELED ones do not.
func (s *BookingService) Overlaps(ctx context.Context, itemID uuid.UUID, candidate booking_models.Interval) (bool, error) {
	bookings, err := s.repo.ListBookingsByItem(ctx, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to load bookings of item %s: %w", itemID, err)
	}
	return AnyOverlap(bookings, candidate), nil
}

func AnyOverlap(bookings []*booking_models.Booking, candidate booking_models.Interval) bool {
	for _, b := range bookings {
		if b.Status.Blocking() && b.Interval.Overlaps(candidate) {
			return true
		}
	}
	return false
}
