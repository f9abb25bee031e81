package reservations

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/events"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ScheduleService/pkg/locker"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/metrics"
)

var day = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type fixture struct {
	store     *usecasetest.Store
	tx        *usecasetest.TxManager
	publisher *usecasetest.Publisher
	svc       *Service
	resID     int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := usecasetest.NewStore()
	store.AddProvider(1)
	store.AddFreeSlots(1, at(8, 0), 8)

	res, err := store.Reservations().Create(context.Background(), &domain.Reservation{
		ProviderID:  1,
		Start:       at(8, 0),
		Duration:    30 * time.Minute,
		ServiceKind: domain.ServiceTiresChange,
		Customer:    domain.Customer{Name: "Иван"},
	})
	require.NoError(t, err)
	require.NoError(t, store.TimeSlots().Bind(context.Background(), res.ID, []domain.SlotKey{
		domain.NewSlotKey(1, at(8, 0)),
		domain.NewSlotKey(1, at(8, 15)),
	}))

	tx := &usecasetest.TxManager{Store: store}
	publisher := &usecasetest.Publisher{}
	svc := NewService(
		store.Reservations(),
		store.Providers(),
		store.TimeSlots(),
		tx,
		locker.NewLocal(),
		publisher,
		(*metrics.Metrics)(nil),
		time.UTC,
		logger.NewNop(),
	)

	return &fixture{store: store, tx: tx, publisher: publisher, svc: svc, resID: res.ID}
}

func TestGetByID(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.GetByID(context.Background(), f.resID)
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, at(8, 30), resp.End)
	assert.Equal(t, []time.Time{at(8, 0), at(8, 15)}, resp.Slots)

	_, err = f.svc.GetByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = f.svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel_ReleasesSlotsAndDeletesReservation(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.svc.Cancel(context.Background(), f.resID))

	assert.Equal(t, 0, f.store.ReservationCount())
	slots := f.store.Slots(1)
	require.Len(t, slots, 8)
	for _, s := range slots {
		assert.True(t, s.IsFree(), "slot %s must be free", s.Key())
	}

	require.Len(t, f.publisher.Events, 1)
	assert.Equal(t, events.TypeReservationCanceled, f.publisher.Events[0].Type)
	assert.Equal(t, 2, f.publisher.Events[0].SlotsRemoved)
}

func TestCancel_NotFound(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Cancel(context.Background(), 999)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.Zero(t, f.tx.Calls)
	assert.Empty(t, f.publisher.Events)
}

func TestCancel_PublishFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	f.publisher.Err = errors.New("broker down")

	require.NoError(t, f.svc.Cancel(context.Background(), f.resID))
	assert.Equal(t, 0, f.store.ReservationCount())
}
