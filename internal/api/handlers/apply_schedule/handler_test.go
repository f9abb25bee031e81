package apply_schedule

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	applySchedule "github.com/m04kA/SMC-ScheduleService/internal/usecase/apply_schedule"
	"github.com/m04kA/SMC-ScheduleService/pkg/logger"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *applySchedule.Request) (*applySchedule.Response, error) {
	args := m.Called(ctx, req)
	if resp, ok := args.Get(0).(*applySchedule.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func newRouter(uc ApplyScheduleUseCase) *mux.Router {
	h := NewHandler(uc, time.UTC, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/providers/{providerId}/schedule", h.Handle).Methods(http.MethodPost, http.MethodPut)
	return r
}

const body = `{"2024-03-12":[{"start":"10:00","durationMinutes":30}],"2024-03-11":[{"start":"08:00","durationMinutes":15}]}`

func TestHandle_PostCreatesSortedPlans(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *applySchedule.Request) bool {
		return req.ProviderID == 7 &&
			req.Mode == applySchedule.ModeCreate &&
			len(req.Plans) == 2 &&
			req.Plans[0].Date.Day() == 11 &&
			req.Plans[1].Windows[0].Start == types.TimeString("10:00") &&
			req.Plans[1].Windows[0].Duration == 30*time.Minute
	})).Return(&applySchedule.Response{ProviderID: 7, Mode: applySchedule.ModeCreate, SlotsAdded: 3}, nil)

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/providers/7/schedule", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"slotsAdded":3`)
	uc.AssertExpectations(t)
}

func TestHandle_PutUsesUpdateMode(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *applySchedule.Request) bool {
		return req.Mode == applySchedule.ModeUpdate
	})).Return(&applySchedule.Response{ProviderID: 7, Mode: applySchedule.ModeUpdate}, nil)

	w := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/providers/7/schedule", strings.NewReader(body)))

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "invalid input", err: applySchedule.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "provider not found", err: applySchedule.ErrProviderNotFound, want: http.StatusNotFound},
		{name: "already exists", err: applySchedule.ErrScheduleAlreadyExists, want: http.StatusConflict},
		{name: "reserved slots", err: fmt.Errorf("%w: slot 08:30", applySchedule.ErrInvalidSchedule), want: http.StatusConflict},
		{name: "internal", err: applySchedule.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/providers/7/schedule", strings.NewReader(body)))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
	}{
		{name: "bad provider id", path: "/providers/abc/schedule", body: body},
		{name: "bad date key", path: "/providers/7/schedule", body: `{"11.03.2024":[]}`},
		{name: "bad start", path: "/providers/7/schedule", body: `{"2024-03-11":[{"start":"8am","durationMinutes":15}]}`},
		{name: "not json", path: "/providers/7/schedule", body: `[`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}

			w := httptest.NewRecorder()
			newRouter(uc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}
