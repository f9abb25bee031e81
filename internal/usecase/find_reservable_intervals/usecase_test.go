package find_reservable_intervals

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/service/durations"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

var day = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func at(d, hour, minute int) time.Time {
	return day.AddDate(0, 0, d).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixedDuration time.Duration

func (f fixedDuration) Duration(domain.ServiceKind) (time.Duration, error) {
	return time.Duration(f), nil
}

func newUseCase(store *usecasetest.Store, d DurationProvider) *UseCase {
	return NewUseCase(
		store.Providers(),
		store.TimeSlots(),
		d,
		&usecasetest.TxManager{Store: store},
		time.UTC,
		logger.NewNop(),
	)
}

func TestExecute_OverlappingWindows(t *testing.T) {
	store := usecasetest.NewStore()
	store.AddProvider(1)
	store.AddFreeSlots(1, at(0, 8, 0), 4)

	resp, err := newUseCase(store, durations.NewService()).Execute(context.Background(), &Request{
		ProviderID:  1,
		ServiceKind: "TIRES_CHANGE",
		From:        day,
		Until:       day.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	require.Len(t, resp.Days, 2)

	first := resp.Days[0].Intervals
	require.Len(t, first, 3)
	assert.Equal(t, at(0, 8, 0), first[0].Start)
	assert.Equal(t, at(0, 8, 15), first[1].Start)
	assert.Equal(t, at(0, 8, 30), first[2].Start)
	for _, iv := range first {
		assert.Equal(t, 30*time.Minute, iv.Duration)
	}

	assert.NotNil(t, resp.Days[1].Intervals)
	assert.Empty(t, resp.Days[1].Intervals)
}

func TestExecute_ReservedSlotsBreakRuns(t *testing.T) {
	store := usecasetest.NewStore()
	store.AddProvider(1)
	store.AddFreeSlots(1, at(0, 8, 0), 6)
	require.NoError(t, store.TimeSlots().Bind(context.Background(), 9, []domain.SlotKey{
		domain.NewSlotKey(1, at(0, 8, 30)),
	}))

	resp, err := newUseCase(store, durations.NewService()).Execute(context.Background(), &Request{
		ProviderID:  1,
		ServiceKind: "WHEEL_BALANCING",
		From:        day,
		Until:       day.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Days[0].Intervals)
}

func TestExecute_UnknownProviderDoesNotWrite(t *testing.T) {
	store := usecasetest.NewStore()

	_, err := newUseCase(store, durations.NewService()).Execute(context.Background(), &Request{
		ProviderID:  7,
		ServiceKind: "TIRE_REPAIR",
		From:        day,
		Until:       day.AddDate(0, 0, 1),
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.Zero(t, store.Writes)
}

func TestExecute_UnknownServiceKind(t *testing.T) {
	store := usecasetest.NewStore()
	store.AddProvider(1)

	_, err := newUseCase(store, durations.NewService()).Execute(context.Background(), &Request{
		ProviderID:  1,
		ServiceKind: "OIL_CHANGE",
		From:        day,
		Until:       day.AddDate(0, 0, 1),
	})
	assert.ErrorIs(t, err, ErrUnknownServiceKind)
}

func TestExecute_DurationNotMultipleOfQuantum(t *testing.T) {
	store := usecasetest.NewStore()
	store.AddProvider(1)

	_, err := newUseCase(store, fixedDuration(20*time.Minute)).Execute(context.Background(), &Request{
		ProviderID:  1,
		ServiceKind: "TIRES_CHANGE",
		From:        day,
		Until:       day.AddDate(0, 0, 1),
	})
	assert.ErrorIs(t, err, ErrConfiguration)
}
