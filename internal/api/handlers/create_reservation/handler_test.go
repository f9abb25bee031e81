package create_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	createReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*models.ReservationResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.ReservationResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

const body = `{"providerId":1,"start":"2024-03-11T08:00:00Z","serviceKind":"TIRES_CHANGE","customer":{"name":"Мария","address":"","email":"","phoneNumber":""}}`

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.ProviderID == 1 &&
			req.Start.Equal(time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC)) &&
			req.Customer.Name == "Мария"
	})).Return(&models.ReservationResponse{ID: 10, ProviderID: 1}, nil)

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":10`)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid", err: createReservation.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "unknown kind", err: createReservation.ErrUnknownServiceKind, want: http.StatusBadRequest},
		{name: "provider not found", err: createReservation.ErrProviderNotFound, want: http.StatusNotFound},
		{name: "no slots", err: createReservation.ErrNoAvailableTimeSlots, want: http.StatusConflict},
		{name: "reserved", err: createReservation.ErrTimeSlotsAlreadyReserved, want: http.StatusConflict},
		{name: "configuration", err: createReservation.ErrConfiguration, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body)))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_InvalidStart(t *testing.T) {
	uc := &mockUseCase{}

	w := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodPost, "/reservations",
		strings.NewReader(`{"providerId":1,"start":"08:00","serviceKind":"TIRES_CHANGE"}`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
