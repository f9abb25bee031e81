package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/ptr"
)

func TestTimeSlot_SameSlotIgnoresReservation(t *testing.T) {
	start := time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)
	free := NewTimeSlot(1, start)
	reserved := NewTimeSlot(1, start)
	reserved.ReservationID = ptr.Ptr(int64(10))

	assert.True(t, free.SameSlot(reserved))
	assert.False(t, free.SameSlot(NewTimeSlot(2, start)))
	assert.False(t, free.SameSlot(NewTimeSlot(1, start.Add(SlotQuantum))))
}

func TestTimeSlot_SameSlotAcrossLocations(t *testing.T) {
	loc := time.FixedZone("EET", 2*60*60)
	utc := NewTimeSlot(1, time.Date(2024, 3, 11, 6, 0, 0, 0, time.UTC))
	local := NewTimeSlot(1, time.Date(2024, 3, 11, 8, 0, 0, 0, loc))

	assert.True(t, utc.SameSlot(local))
	assert.Equal(t, utc.Key(), local.Key())
}

func TestTimeSlot_Validate(t *testing.T) {
	slot := NewTimeSlot(1, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC))
	require.NoError(t, slot.Validate())

	slot.Duration = 30 * time.Minute
	assert.ErrorIs(t, slot.Validate(), ErrInvalidSlotDuration)
}

func TestTimeSlot_Reservation(t *testing.T) {
	slot := NewTimeSlot(1, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC))
	assert.True(t, slot.IsFree())

	slot.ReservationID = ptr.Ptr(int64(5))
	assert.False(t, slot.IsFree())
	assert.True(t, slot.IsReservedBy(5))
	assert.False(t, slot.IsReservedBy(6))
	assert.Equal(t, time.Date(2024, 3, 11, 8, 15, 0, 0, time.UTC), slot.End())
}

func TestParseServiceKind(t *testing.T) {
	for _, kind := range AllServiceKinds {
		got, err := ParseServiceKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, got)
	}

	_, err := ParseServiceKind("CAR_WASH")
	assert.ErrorIs(t, err, ErrUnknownServiceKind)
}

func TestDatesBetween(t *testing.T) {
	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)

	dates := DatesBetween(from, until)
	require.Len(t, dates, 3)
	assert.Equal(t, "2024-03-11", DateKey(dates[0]))
	assert.Equal(t, "2024-03-13", DateKey(dates[2]))

	assert.Empty(t, DatesBetween(until, from))
}

func TestDayEnvelope_Bounds(t *testing.T) {
	date := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

	start, end, err := DefaultEnvelope().Bounds(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 13*time.Hour, end.Sub(start))
}
