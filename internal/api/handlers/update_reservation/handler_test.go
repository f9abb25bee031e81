package update_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-ScheduleService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SMC-ScheduleService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *updateReservation.Request) (*models.ReservationResponse, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*models.ReservationResponse); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

const body = `{"start":"2024-03-11T09:00:00Z","serviceKind":"WHEEL_BALANCING","customer":{"name":"Олег","address":"","email":"","phoneNumber":""}}`

func serve(uc UpdateReservationUseCase, path, payload string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/reservations/{reservationId}", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPut)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, strings.NewReader(payload)))
	return w
}

func TestHandle_Updated(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *updateReservation.Request) bool {
		return req.ReservationID == 7 &&
			req.Start.Equal(time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)) &&
			req.ServiceKind == "WHEEL_BALANCING"
	})).Return(&models.ReservationResponse{ID: 7, ProviderID: 1, DurationMinutes: 60}, nil)

	w := serve(uc, "/reservations/7", body)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid", err: updateReservation.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "unknown kind", err: updateReservation.ErrUnknownServiceKind, want: http.StatusBadRequest},
		{name: "not found", err: updateReservation.ErrReservationNotFound, want: http.StatusNotFound},
		{name: "no slots", err: updateReservation.ErrNoAvailableTimeSlots, want: http.StatusConflict},
		{name: "reserved", err: updateReservation.ErrTimeSlotsAlreadyReserved, want: http.StatusConflict},
		{name: "configuration", err: updateReservation.ErrConfiguration, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := serve(uc, "/reservations/7", body)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		payload string
	}{
		{name: "bad id", path: "/reservations/x", payload: body},
		{name: "empty body", path: "/reservations/7", payload: ""},
		{name: "bad start", path: "/reservations/7", payload: `{"start":"11.03.2024 09:00","serviceKind":"TIRES_CHANGE"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}

			w := serve(uc, tt.path, tt.payload)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
