package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/Irina-Gavrilina/shareit/models/item_models"
	"github.com/Irina-Gavrilina/shareit/models/user_models"
	"github.com/google/uuid"
)

// MemoryRepository keeps everything in process. It is used when no
// DATABASE_URL is configured and in tests. CreateBooking enforces the same
// no-overlap rule as the postgres exclusion constraint.
type MemoryRepository struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user_models.User
	items    map[uuid.UUID]item_models.Item
	bookings map[uuid.UUID]booking_models.Booking
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		users:    make(map[uuid.UUID]user_models.User),
		items:    make(map[uuid.UUID]item_models.Item),
		bookings: make(map[uuid.UUID]booking_models.Booking),
	}
}

func (r *MemoryRepository) CreateUser(_ context.Context, user *user_models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		user.ID = id
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return ErrDuplicate
		}
	}
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryRepository) GetUser(_ context.Context, id uuid.UUID) (*user_models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) ListUsersByIDs(_ context.Context, ids []uuid.UUID) ([]*user_models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*user_models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			users = append(users, &u)
		}
	}
	return users, nil
}

func (r *MemoryRepository) CreateItem(_ context.Context, item *item_models.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if item.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		item.ID = id
	}
	r.items[item.ID] = *item
	return nil
}

func (r *MemoryRepository) GetItem(_ context.Context, id uuid.UUID) (*item_models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &it, nil
}

func (r *MemoryRepository) ListItemsByIDs(_ context.Context, ids []uuid.UUID) ([]*item_models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*item_models.Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := r.items[id]; ok {
			items = append(items, &it)
		}
	}
	return items, nil
}

func (r *MemoryRepository) ListItemsByOwner(_ context.Context, ownerID uuid.UUID) ([]*item_models.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*item_models.Item, 0)
	for _, it := range r.items {
		if it.OwnerID == ownerID {
			items = append(items, &it)
		}
	}
	return items, nil
}

func (r *MemoryRepository) CreateBooking(_ context.Context, booking *booking_models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.Status.Blocking() {
		for _, b := range r.bookings {
			if b.ItemID == booking.ItemID && b.Status.Blocking() && b.Interval.Overlaps(booking.Interval) {
				return ErrOverlap
			}
		}
	}

	if booking.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		booking.ID = id
	}
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryRepository) GetBooking(_ context.Context, id uuid.UUID) (*booking_models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *MemoryRepository) ListBookingsByItem(ctx context.Context, itemID uuid.UUID) ([]*booking_models.Booking, error) {
	return r.ListBookingsByItemIDs(ctx, []uuid.UUID{itemID})
}

func (r *MemoryRepository) ListBookingsByItemIDs(_ context.Context, itemIDs []uuid.UUID) ([]*booking_models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[uuid.UUID]struct{}, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = struct{}{}
	}

	bookings := make([]*booking_models.Booking, 0)
	for _, b := range r.bookings {
		if _, ok := wanted[b.ItemID]; ok {
			bookings = append(bookings, &b)
		}
	}
	booking_models.SortByStartDesc(bookings)
	return bookings, nil
}

func (r *MemoryRepository) ListBookings(_ context.Context, filter BookingFilter) ([]*booking_models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bookings := make([]*booking_models.Booking, 0)
	for _, b := range r.bookings {
		if filter.BookerID != uuid.Nil && b.BookerID != filter.BookerID {
			continue
		}
		if filter.OwnerID != uuid.Nil {
			it, ok := r.items[b.ItemID]
			if !ok || it.OwnerID != filter.OwnerID {
				continue
			}
		}
		if !filter.State.Matches(&b, filter.Now) {
			continue
		}
		bookings = append(bookings, &b)
	}
	booking_models.SortByStartDesc(bookings)
	return bookings, nil
}

func (r *MemoryRepository) UpdateBookingStatus(_ context.Context, id uuid.UUID, from, to booking_models.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return false, ErrNotFound
	}
	if b.Status != from {
		return false, nil
	}
	b.Status = to
	b.UpdatedAt = time.Now()
	r.bookings[id] = b
	return true, nil
}
