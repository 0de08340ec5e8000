package booking_service

import (
	"context"

	"github.com/Irina-Gavrilina/shareit/utils"
	"github.com/google/uuid"
)

// GetByID returns a booking to its booker or to the owner of the booked item.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requesterID uuid.UUID) (*BookingDetails, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, s.fail("get", err)
	}
	item, err := s.getItem(ctx, booking.ItemID)
	if err != nil {
		return nil, s.fail("get", err)
	}

	if requesterID != booking.BookerID && requesterID != item.OwnerID {
		return nil, s.fail("get", utils.UnavailableBooking(
			"only the item owner or the booker may view booking %s", booking.ID))
	}

	booker, err := s.getUser(ctx, booking.BookerID)
	if err != nil {
		return nil, s.fail("get", err)
	}
	return &BookingDetails{Booking: booking, Item: item, Booker: booker}, nil
}
