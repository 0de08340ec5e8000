package item_service

import (
	"testing"
	"time"

	"github.com/Irina-Gavrilina/shareit/models/booking_models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day = 24 * time.Hour

var now = time.Date(2030, 3, 1, 10, 0, 0, 0, time.Local)

func booking(itemID uuid.UUID, start, end time.Duration, status booking_models.Status) *booking_models.Booking {
	return &booking_models.Booking{
		ID:       uuid.New(),
		Interval: booking_models.Interval{Start: now.Add(start), End: now.Add(end)},
		ItemID:   itemID,
		BookerID: uuid.New(),
		Status:   status,
	}
}

func TestSummarize(t *testing.T) {
	item := uuid.New()

	t.Run("YesterdayAndTomorrow", func(t *testing.T) {
		yesterday := booking(item, -2*day, -day, booking_models.StatusApproved)
		tomorrow := booking(item, day, 2*day, booking_models.StatusApproved)

		a := Summarize([]*booking_models.Booking{tomorrow, yesterday}, now)
		require.NotNil(t, a.Last)
		require.NotNil(t, a.Next)
		assert.Equal(t, yesterday.ID, a.Last.ID)
		assert.Equal(t, yesterday.BookerID, a.Last.BookerID)
		assert.Equal(t, tomorrow.ID, a.Next.ID)
	})

	t.Run("PicksClosest", func(t *testing.T) {
		old := booking(item, -10*day, -9*day, booking_models.StatusApproved)
		recent := booking(item, -3*day, -2*day, booking_models.StatusApproved)
		ongoing := booking(item, -time.Hour, time.Hour, booking_models.StatusApproved)
		soon := booking(item, day, 2*day, booking_models.StatusWaiting)
		later := booking(item, 5*day, 6*day, booking_models.StatusApproved)

		a := Summarize([]*booking_models.Booking{later, old, soon, ongoing, recent}, now)
		assert.Equal(t, ongoing.ID, a.Last.ID)
		assert.Equal(t, soon.ID, a.Next.ID)
	})

	t.Run("IgnoresNonBlocking", func(t *testing.T) {
		rejected := booking(item, day, 2*day, booking_models.StatusRejected)
		canceled := booking(item, -2*day, -day, booking_models.StatusCanceled)

		a := Summarize([]*booking_models.Booking{rejected, canceled}, now)
		assert.Nil(t, a.Last)
		assert.Nil(t, a.Next)
	})

	t.Run("StartingExactlyNow", func(t *testing.T) {
		b := booking(item, 0, day, booking_models.StatusApproved)
		a := Summarize([]*booking_models.Booking{b}, now)
		assert.Nil(t, a.Last)
		assert.Nil(t, a.Next)
	})

	t.Run("NoBookings", func(t *testing.T) {
		a := Summarize(nil, now)
		assert.Nil(t, a.Last)
		assert.Nil(t, a.Next)
	})
}

func TestGroupByItem(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	a := booking(first, day, 2*day, booking_models.StatusApproved)
	b := booking(second, day, 2*day, booking_models.StatusApproved)
	c := booking(first, 3*day, 4*day, booking_models.StatusWaiting)

	grouped := GroupByItem([]*booking_models.Booking{a, b, c})
	assert.Len(t, grouped, 2)
	assert.Equal(t, []*booking_models.Booking{a, c}, grouped[first])
	assert.Equal(t, []*booking_models.Booking{b}, grouped[second])
}
