package booking_service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/Irina-Gavrilina/shareit/models/item_models"
	"github.com/Irina-Gavrilina/shareit/models/user_models"
	"github.com/Irina-Gavrilina/shareit/repository"
	"github.com/Irina-Gavrilina/shareit/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

var now = time.Date(2030, 3, 1, 10, 0, 0, 0, time.Local)

type fixture struct {
	ctx     context.Context
	repo    *repository.MemoryRepository
	service *BookingService
	owner   *user_models.User
	booker  *user_models.User
	other   *user_models.User
	item    *item_models.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{ctx: context.Background(), repo: repository.NewMemoryRepository()}
	f.service = NewBookingService(f.repo, NewLocalLocker(), utils.FixedClock(now))

	f.owner = f.addUser(t, "owner", "owner@example.com")
	f.booker = f.addUser(t, "booker", "booker@example.com")
	f.other = f.addUser(t, "other", "other@example.com")
	f.item = f.addItem(t, f.owner, true)
	return f
}

func (f *fixture) addUser(t *testing.T, name, email string) *user_models.User {
	t.Helper()
	u, err := user_models.NewUser(name, email)
	require.NoError(t, err)
	require.NoError(t, f.repo.CreateUser(f.ctx, u))
	return u
}

func (f *fixture) addItem(t *testing.T, owner *user_models.User, available bool) *item_models.Item {
	t.Helper()
	it, err := item_models.NewItem(owner.ID, "drill", "cordless drill", available)
	require.NoError(t, err)
	require.NoError(t, f.repo.CreateItem(f.ctx, it))
	return it
}

func (f *fixture) book(itemID, bookerID uuid.UUID, start, end time.Duration) (*BookingDetails, error) {
	return f.service.Create(f.ctx, CreateBookingRequest{
		ItemID: itemID,
		Start:  now.Add(start),
		End:    now.Add(end),
	}, bookerID)
}

func (f *fixture) mustBook(t *testing.T, start, end time.Duration) *BookingDetails {
	t.Helper()
	d, err := f.book(f.item.ID, f.booker.ID, start, end)
	require.NoError(t, err)
	return d
}

func TestCreateBooking(t *testing.T) {
	t.Run("Succeeds", func(t *testing.T) {
		f := newFixture(t)

		d, err := f.book(f.item.ID, f.booker.ID, day, 3*day)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, d.ID)
		assert.Equal(t, booking_models.StatusWaiting, d.Status)
		assert.Equal(t, f.item.ID, d.Item.ID)
		assert.Equal(t, f.booker.ID, d.Booker.ID)
		assert.True(t, now.Add(day).Equal(d.Interval.Start))

		stored, err := f.repo.GetBooking(f.ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusWaiting, stored.Status)
	})

	t.Run("StartMayEqualNow", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.book(f.item.ID, f.booker.ID, 0, time.Hour)
		assert.NoError(t, err)
	})

	t.Run("StartInPast", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.book(f.item.ID, f.booker.ID, -time.Second, time.Hour)
		assert.ErrorIs(t, err, utils.ErrUnavailableBooking)
	})

	t.Run("EndNotAfterStart", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.book(f.item.ID, f.booker.ID, day, day)
		assert.ErrorIs(t, err, utils.ErrUnavailableBooking)
		_, err = f.book(f.item.ID, f.booker.ID, 2*day, day)
		assert.ErrorIs(t, err, utils.ErrUnavailableBooking)
	})

	t.Run("UnknownBooker", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.book(f.item.ID, uuid.New(), day, 2*day)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		f := newFixture(t)
		missing := uuid.New()
		_, err := f.book(missing, f.booker.ID, day, 2*day)
		require.ErrorIs(t, err, utils.ErrNotFound)
		assert.Contains(t, err.Error(), missing.String())
	})

	t.Run("ItemUnavailable", func(t *testing.T) {
		f := newFixture(t)
		hidden := f.addItem(t, f.owner, false)
		_, err := f.book(hidden.ID, f.booker.ID, day, 2*day)
		assert.ErrorIs(t, err, utils.ErrUnavailableBooking)
	})
}

func TestSelfBookingForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := f.book(f.item.ID, f.owner.ID, day, 2*day)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	// Still Forbidden when the item is unavailable or the slot is taken.
	hidden := f.addItem(t, f.owner, false)
	_, err = f.book(hidden.ID, f.owner.ID, day, 2*day)
	assert.ErrorIs(t, err, utils.ErrForbidden)

	f.mustBook(t, 3*day, 4*day)
	_, err = f.book(f.item.ID, f.owner.ID, 3*day, 4*day)
	assert.ErrorIs(t, err, utils.ErrForbidden)
}

func TestNoDoubleBooking(t *testing.T) {
	t.Run("OverlapRejected", func(t *testing.T) {
		f := newFixture(t)
		f.mustBook(t, day, 3*day)

		_, err := f.book(f.item.ID, f.other.ID, 2*day, 4*day)
		assert.ErrorIs(t, err, utils.ErrUnavailableBooking)
	})

	t.Run("TouchingIntervalsAllowed", func(t *testing.T) {
		f := newFixture(t)
		f.mustBook(t, day, 3*day)

		_, err := f.book(f.item.ID, f.other.ID, 3*day, 4*day)
		assert.NoError(t, err)
		_, err = f.book(f.item.ID, f.other.ID, 0, day)
		assert.NoError(t, err)
	})

	t.Run("RejectedBookingFreesSlot", func(t *testing.T) {
		f := newFixture(t)
		first := f.mustBook(t, day, 3*day)

		_, err := f.service.Approve(f.ctx, first.ID, f.owner.ID, false)
		require.NoError(t, err)

		_, err = f.book(f.item.ID, f.other.ID, 2*day, 4*day)
		assert.NoError(t, err)
	})

	t.Run("OtherItemUnaffected", func(t *testing.T) {
		f := newFixture(t)
		f.mustBook(t, day, 3*day)
		second := f.addItem(t, f.owner, true)

		_, err := f.book(second.ID, f.booker.ID, day, 3*day)
		assert.NoError(t, err)
	})

	t.Run("ConcurrentRequests", func(t *testing.T) {
		f := newFixture(t)

		const workers = 16
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if _, err := f.book(f.item.ID, f.booker.ID, day, 2*day); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		bookings, err := f.repo.ListBookingsByItem(f.ctx, f.item.ID)
		require.NoError(t, err)
		assert.Len(t, bookings, 1)
	})
}

func TestApproveBooking(t *testing.T) {
	t.Run("ApproveAndReject", func(t *testing.T) {
		f := newFixture(t)
		first := f.mustBook(t, day, 2*day)
		second := f.mustBook(t, 3*day, 4*day)

		approved, err := f.service.Approve(f.ctx, first.ID, f.owner.ID, true)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusApproved, approved.Status)
		assert.Equal(t, f.booker.ID, approved.Booker.ID)

		rejected, err := f.service.Approve(f.ctx, second.ID, f.owner.ID, false)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusRejected, rejected.Status)
		assert.True(t, second.Interval.Start.Equal(rejected.Interval.Start))
	})

	t.Run("NotWaiting", func(t *testing.T) {
		f := newFixture(t)
		d := f.mustBook(t, day, 2*day)
		_, err := f.service.Approve(f.ctx, d.ID, f.owner.ID, true)
		require.NoError(t, err)

		_, err = f.service.Approve(f.ctx, d.ID, f.owner.ID, false)
		require.ErrorIs(t, err, utils.ErrUnavailableBooking)
		assert.Contains(t, err.Error(), string(booking_models.StatusApproved))

		stored, err := f.repo.GetBooking(f.ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusApproved, stored.Status)
	})

	t.Run("OnlyOwnerMayDecide", func(t *testing.T) {
		f := newFixture(t)
		d := f.mustBook(t, day, 2*day)

		_, err := f.service.Approve(f.ctx, d.ID, f.booker.ID, true)
		assert.ErrorIs(t, err, utils.ErrUnavailableBooking)
		_, err = f.service.Approve(f.ctx, d.ID, f.other.ID, true)
		assert.ErrorIs(t, err, utils.ErrUnavailableBooking)

		stored, err := f.repo.GetBooking(f.ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, booking_models.StatusWaiting, stored.Status)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.Approve(f.ctx, uuid.New(), f.owner.ID, true)
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("ConcurrentDecisions", func(t *testing.T) {
		f := newFixture(t)
		d := f.mustBook(t, day, 2*day)

		var (
			wg   sync.WaitGroup
			mu   sync.Mutex
			wins int
		)
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(approve bool) {
				defer wg.Done()
				if _, err := f.service.Approve(f.ctx, d.ID, f.owner.ID, approve); err == nil {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}(i%2 == 0)
		}
		wg.Wait()

		assert.Equal(t, 1, wins)
	})
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)
	d := f.mustBook(t, day, 2*day)

	got, err := f.service.GetByID(f.ctx, d.ID, f.booker.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	got, err = f.service.GetByID(f.ctx, d.ID, f.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)

	_, err = f.service.GetByID(f.ctx, d.ID, f.other.ID)
	assert.ErrorIs(t, err, utils.ErrUnavailableBooking)

	_, err = f.service.GetByID(f.ctx, uuid.New(), f.booker.ID)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestBookingScenario(t *testing.T) {
	f := newFixture(t)

	first, err := f.book(f.item.ID, f.booker.ID, day, 3*day)
	require.NoError(t, err)
	assert.Equal(t, booking_models.StatusWaiting, first.Status)

	_, err = f.book(f.item.ID, f.booker.ID, 2*day, 4*day)
	require.ErrorIs(t, err, utils.ErrUnavailableBooking)

	approved, err := f.service.Approve(f.ctx, first.ID, f.owner.ID, true)
	require.NoError(t, err)
	assert.Equal(t, booking_models.StatusApproved, approved.Status)

	_, err = f.service.GetByID(f.ctx, first.ID, f.booker.ID)
	require.NoError(t, err)
	_, err = f.service.GetByID(f.ctx, first.ID, f.other.ID)
	assert.ErrorIs(t, err, utils.ErrUnavailableBooking)
}
