package booking_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Irina-Gavrilina/shareit/logger"
	"github.com/Irina-Gavrilina/shareit/metrics"
	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/Irina-Gavrilina/shareit/models/item_models"
	"github.com/Irina-Gavrilina/shareit/models/user_models"
	"github.com/Irina-Gavrilina/shareit/repository"
	"github.com/Irina-Gavrilina/shareit/utils"
	"github.com/google/uuid"
)

// BookingService owns the booking lifecycle: creation, owner approval,
// access-checked retrieval and state-filtered listing.
type BookingService struct {
	repo   repository.Repository
	locker Locker
	clock  utils.Clock
}

func NewBookingService(repo repository.Repository, locker Locker, clock utils.Clock) *BookingService {
	if locker == nil {
		locker = NewLocalLocker()
	}
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &BookingService{repo: repo, locker: locker, clock: clock}
}

// CreateBookingRequest is the booker's request for an item over [Start, End).
type CreateBookingRequest struct {
	ItemID uuid.UUID
	Start  time.Time
	End    time.Time
}

// BookingDetails is a booking with its item and booker resolved.
type BookingDetails struct {
	*booking_models.Booking
	Item   *item_models.Item
	Booker *user_models.User
}

// Create stores a new WAITING booking of req.ItemID for bookerID.
func (s *BookingService) Create(ctx context.Context, req CreateBookingRequest, bookerID uuid.UUID) (*BookingDetails, error) {
	logger.InfoLogger.Infof("User %s requests item %s from %s to %s", bookerID, req.ItemID,
		req.Start.Format(booking_models.DateTimeLayout), req.End.Format(booking_models.DateTimeLayout))

	interval, err := booking_models.NewInterval(req.Start, req.End)
	if err != nil {
		return nil, s.fail("create", err)
	}
	now := s.clock.Now().Truncate(time.Second)
	if interval.Start.Before(now) {
		return nil, s.fail("create", utils.UnavailableBooking("booking start %s is in the past",
			interval.Start.Format(booking_models.DateTimeLayout)))
	}

	booker, err := s.getUser(ctx, bookerID)
	if err != nil {
		return nil, s.fail("create", err)
	}
	item, err := s.getItem(ctx, req.ItemID)
	if err != nil {
		return nil, s.fail("create", err)
	}

	if item.OwnerID == bookerID {
		return nil, s.fail("create", utils.Forbidden("owner cannot book their own item %s", item.ID))
	}
	if !item.Available {
		return nil, s.fail("create", utils.UnavailableBooking("item %s is not available for booking", item.ID))
	}

	lockStart := time.Now()
	unlock, err := s.locker.Lock(ctx, itemLockKey(item.ID))
	metrics.BookingLockWait.Observe(time.Since(lockStart).Seconds())
	if err != nil {
		return nil, s.fail("create", err)
	}
	defer unlock()

	overlaps, err := s.Overlaps(ctx, item.ID, interval)
	if err != nil {
		return nil, s.fail("create", err)
	}
	if overlaps {
		return nil, s.fail("create", overlapError(item.ID))
	}

	booking := booking_models.NewBooking(interval, item.ID, booker.ID)
	if err := s.repo.CreateBooking(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, s.fail("create", overlapError(item.ID))
		}
		return nil, s.fail("create", fmt.Errorf("failed to save booking: %w", err))
	}

	metrics.BookingsCreated.Inc()
	logger.InfoLogger.Infof("Booking %s created for item %s by user %s", booking.ID, item.ID, booker.ID)
	return &BookingDetails{Booking: booking, Item: item, Booker: booker}, nil
}

// Approve lets the item owner move a WAITING booking to APPROVED or REJECTED.
func (s *BookingService) Approve(ctx context.Context, bookingID, ownerID uuid.UUID, approved bool) (*BookingDetails, error) {
	logger.InfoLogger.Infof("User %s decides booking %s (approved=%t)", ownerID, bookingID, approved)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, s.fail("approve", err)
	}
	item, err := s.getItem(ctx, booking.ItemID)
	if err != nil {
		return nil, s.fail("approve", err)
	}
	if item.OwnerID != ownerID {
		return nil, s.fail("approve", utils.UnavailableBooking(
			"only the owner of item %s may approve or reject booking %s", item.ID, booking.ID))
	}
	if booking.Status != booking_models.StatusWaiting {
		return nil, s.fail("approve", notWaitingError(booking))
	}

	next := booking_models.StatusRejected
	if approved {
		next = booking_models.StatusApproved
	}

	updated, err := s.repo.UpdateBookingStatus(ctx, booking.ID, booking_models.StatusWaiting, next)
	if err != nil {
		return nil, s.fail("approve", fmt.Errorf("failed to update booking %s: %w", booking.ID, err))
	}
	if !updated {
		// Someone else decided first; report what they decided.
		current, err := s.getBooking(ctx, booking.ID)
		if err != nil {
			return nil, s.fail("approve", err)
		}
		return nil, s.fail("approve", notWaitingError(current))
	}
	booking.Status = next

	booker, err := s.getUser(ctx, booking.BookerID)
	if err != nil {
		return nil, s.fail("approve", err)
	}

	metrics.BookingDecisions.WithLabelValues(string(next)).Inc()
	logger.InfoLogger.Infof("Booking %s is now %s", booking.ID, next)
	return &BookingDetails{Booking: booking, Item: item, Booker: booker}, nil
}

func overlapError(itemID uuid.UUID) error {
	return utils.UnavailableBooking("item %s is already booked for part or all of the requested period", itemID)
}

func notWaitingError(b *booking_models.Booking) error {
	return utils.UnavailableBooking("booking %s is in status %s and can no longer be approved or rejected", b.ID, b.Status)
}

func (s *BookingService) getUser(ctx context.Context, id uuid.UUID) (*user_models.User, error) {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("user with id %s does not exist", id)
		}
		return nil, fmt.Errorf("failed to load user %s: %w", id, err)
	}
	return user, nil
}

func (s *BookingService) getItem(ctx context.Context, id uuid.UUID) (*item_models.Item, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("item with id %s does not exist", id)
		}
		return nil, fmt.Errorf("failed to load item %s: %w", id, err)
	}
	return item, nil
}

func (s *BookingService) getBooking(ctx context.Context, id uuid.UUID) (*booking_models.Booking, error) {
	booking, err := s.repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.NotFound("booking with id %s does not exist", id)
		}
		return nil, fmt.Errorf("failed to load booking %s: %w", id, err)
	}
	return booking, nil
}

// fail records a refused operation and returns err unchanged.
func (s *BookingService) fail(operation string, err error) error {
	kind := "unexpected"
	switch {
	case errors.Is(err, utils.ErrNotFound):
		kind = "not_found"
	case errors.Is(err, utils.ErrForbidden):
		kind = "forbidden"
	case errors.Is(err, utils.ErrUnavailableBooking):
		kind = "unavailable"
	}
	metrics.BookingRejections.WithLabelValues(operation, kind).Inc()

	if kind == "unexpected" {
		logger.ErrorLogger.Errorf("Booking %s failed: %v", operation, err)
	} else {
		logger.WarnLogger.Warnf("Booking %s refused: %v", operation, err)
	}
	return err
}
