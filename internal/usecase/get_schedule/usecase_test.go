package get_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

var day = time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)

func at(d, hour, minute int) time.Time {
	return day.AddDate(0, 0, d).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func newUseCase(store *usecasetest.Store) *UseCase {
	return NewUseCase(
		store.Providers(),
		store.TimeSlots(),
		store.Reservations(),
		&usecasetest.TxManager{Store: store},
		time.UTC,
		domain.DefaultEnvelope(),
		logger.NewNop(),
	)
}

func TestExecute_RendersEveryDate(t *testing.T) {
	store := usecasetest.NewStore()
	store.AddProvider(1)
	store.AddFreeSlots(1, at(0, 9, 0), 4)

	res, err := store.Reservations().Create(context.Background(), &domain.Reservation{
		ProviderID:  1,
		Start:       at(0, 9, 30),
		Duration:    30 * time.Minute,
		ServiceKind: domain.ServiceTiresChange,
		Customer:    domain.Customer{Name: "Анна"},
	})
	require.NoError(t, err)
	require.NoError(t, store.TimeSlots().Bind(context.Background(), res.ID, []domain.SlotKey{
		domain.NewSlotKey(1, at(0, 9, 30)),
		domain.NewSlotKey(1, at(0, 9, 45)),
	}))

	resp, err := newUseCase(store).Execute(context.Background(), &Request{
		ProviderID: 1,
		From:       day,
		Until:      day.AddDate(0, 0, 2),
	})
	require.NoError(t, err)
	require.Len(t, resp.Days, 2)

	first := resp.Days[0].Intervals
	require.Len(t, first, 4)
	assert.Equal(t, domain.StatusUnavailable, first[0].Status)
	assert.Equal(t, at(0, 8, 0), first[0].Start)
	assert.Equal(t, domain.StatusAvailable, first[1].Status)
	assert.Equal(t, 30*time.Minute, first[1].Duration)
	assert.Equal(t, domain.StatusReserved, first[2].Status)
	require.NotNil(t, first[2].Reservation)
	assert.Equal(t, "Анна", first[2].Reservation.CustomerName)
	assert.Equal(t, domain.ServiceTiresChange, first[2].Reservation.ServiceKind)
	assert.Equal(t, domain.StatusUnavailable, first[3].Status)
	assert.Equal(t, at(0, 21, 0), first[3].End())

	second := resp.Days[1].Intervals
	require.Len(t, second, 1)
	assert.Equal(t, domain.StatusUnavailable, second[0].Status)
	assert.Equal(t, 13*time.Hour, second[0].Duration)
}

func TestExecute_UnknownProvider(t *testing.T) {
	store := usecasetest.NewStore()

	_, err := newUseCase(store).Execute(context.Background(), &Request{
		ProviderID: 42,
		From:       day,
		Until:      day.AddDate(0, 0, 1),
	})
	assert.ErrorIs(t, err, ErrProviderNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newUseCase(usecasetest.NewStore())

	tests := []struct {
		name string
		req  Request
	}{
		{name: "no provider", req: Request{From: day, Until: day.AddDate(0, 0, 1)}},
		{name: "empty range", req: Request{ProviderID: 1, From: day, Until: day}},
		{name: "reversed range", req: Request{ProviderID: 1, From: day.AddDate(0, 0, 1), Until: day}},
		{name: "range too long", req: Request{ProviderID: 1, From: day, Until: day.AddDate(1, 0, 0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
