// Package repository is the storage port of the booking service and its
// postgres and in-memory implementations.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/Irina-Gavrilina/shareit/models/item_models"
	"github.com/Irina-Gavrilina/shareit/models/user_models"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrOverlap is returned by CreateBooking when the storage layer itself
	// rejects an interval that intersects a blocking booking of the same item.
	ErrOverlap   = errors.New("booking interval overlaps an existing booking")
	ErrDuplicate = errors.New("record already exists")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *user_models.User) error
	GetUser(ctx context.Context, id uuid.UUID) (*user_models.User, error)
	ListUsersByIDs(ctx context.Context, ids []uuid.UUID) ([]*user_models.User, error)
}

type ItemRepository interface {
	CreateItem(ctx context.Context, item *item_models.Item) error
	GetItem(ctx context.Context, id uuid.UUID) (*item_models.Item, error)
	ListItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*item_models.Item, error)
	ListItemsByOwner(ctx context.Context, ownerID uuid.UUID) ([]*item_models.Item, error)
}

// BookingFilter selects a user's bookings either as booker or as item owner.
// Exactly one of BookerID and OwnerID is set.
type BookingFilter struct {
	BookerID uuid.UUID
	OwnerID  uuid.UUID
	State    booking_models.State
	Now      time.Time
}

type BookingRepository interface {
	// CreateBooking assigns ID and timestamps to an unpersisted booking and stores it.
	CreateBooking(ctx context.Context, booking *booking_models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*booking_models.Booking, error)
	ListBookingsByItem(ctx context.Context, itemID uuid.UUID) ([]*booking_models.Booking, error)
	ListBookingsByItemIDs(ctx context.Context, itemIDs []uuid.UUID) ([]*booking_models.Booking, error)
	// ListBookings returns the filtered bookings ordered by start descending.
	ListBookings(ctx context.Context, filter BookingFilter) ([]*booking_models.Booking, error)
	// UpdateBookingStatus moves a booking from one status to another and reports
	// false when the booking is no longer in status from.
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, from, to booking_models.Status) (bool, error)
}

type Repository interface {
	UserRepository
	ItemRepository
	BookingRepository
}
