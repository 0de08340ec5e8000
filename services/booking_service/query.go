package booking_service

import (
	"context"
	"fmt"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/Irina-Gavrilina/shareit/models/item_models"
	"github.com/Irina-Gavrilina/shareit/models/user_models"
	"github.com/Irina-Gavrilina/shareit/repository"
	"github.com/google/uuid"
)

// ListByBooker returns the bookings made by bookerID that fall into state.
func (s *BookingService) ListByBooker(ctx context.Context, state string, bookerID uuid.UUID) ([]*BookingDetails, error) {
	return s.list(ctx, "list_booker", state, bookerID, func(f *repository.BookingFilter) { f.BookerID = bookerID })
}

// ListByOwner returns the bookings of items owned by ownerID that fall into state.
func (s *BookingService) ListByOwner(ctx context.Context, state string, ownerID uuid.UUID) ([]*BookingDetails, error) {
	return s.list(ctx, "list_owner", state, ownerID, func(f *repository.BookingFilter) { f.OwnerID = ownerID })
}

func (s *BookingService) list(
	ctx context.Context,
	operation, rawState string,
	userID uuid.UUID,
	scope func(*repository.BookingFilter),
) ([]*BookingDetails, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, s.fail(operation, err)
	}
	state, err := booking_models.ParseState(rawState)
	if err != nil {
		return nil, s.fail(operation, err)
	}

	filter := repository.BookingFilter{State: state, Now: s.clock.Now()}
	scope(&filter)

	bookings, err := s.repo.ListBookings(ctx, filter)
	if err != nil {
		return nil, s.fail(operation, fmt.Errorf("failed to list bookings: %w", err))
	}

	details, err := s.resolve(ctx, bookings)
	if err != nil {
		return nil, s.fail(operation, err)
	}
	logger.InfoLogger.Infof("Listed %d %s bookings for user %s (%s)", len(details), state, userID, operation)
	return details, nil
}

// resolve attaches items and bookers with one batched fetch each.
func (s *BookingService) resolve(ctx context.Context, bookings []*booking_models.Booking) ([]*BookingDetails, error) {
	details := make([]*BookingDetails, 0, len(bookings))
	if len(bookings) == 0 {
		return details, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(bookings))
	userIDs := make([]uuid.UUID, 0, len(bookings))
	seenItems := make(map[uuid.UUID]struct{}, len(bookings))
	seenUsers := make(map[uuid.UUID]struct{}, len(bookings))
	for _, b := range bookings {
		if _, ok := seenItems[b.ItemID]; !ok {
			seenItems[b.ItemID] = struct{}{}
			itemIDs = append(itemIDs, b.ItemID)
		}
		if _, ok := seenUsers[b.BookerID]; !ok {
			seenUsers[b.BookerID] = struct{}{}
			userIDs = append(userIDs, b.BookerID)
		}
	}

	items, err := s.repo.ListItemsByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load booked items: %w", err)
	}
	users, err := s.repo.ListUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookers: %w", err)
	}

	itemsByID := make(map[uuid.UUID]*item_models.Item, len(items))
	for _, it := range items {
		itemsByID[it.ID] = it
	}
	usersByID := make(map[uuid.UUID]*user_models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	for _, b := range bookings {
		details = append(details, &BookingDetails{Booking: b, Item: itemsByID[b.ItemID], Booker: usersByID[b.BookerID]})
	}
	return details, nil
}
