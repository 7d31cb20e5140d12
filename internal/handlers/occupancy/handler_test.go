package occupancy_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pms/infras/otel/mocks"
	bookingMocks "pms/internal/domains/booking/mocks"
	occupancyMocks "pms/internal/domains/occupancy/mocks"
	"pms/internal/domains/occupancy/model/dto"
	"pms/internal/domains/occupancy/service"
	roomMocks "pms/internal/domains/room/mocks"
	roomModel "pms/internal/domains/room/model"
	"pms/internal/handlers/occupancy"
	"pms/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const roomID = "3c7e9a1b-2d4f-4b6a-8c0e-1f3a5b7c9d2e"

func newRouter(svc service.Occupancy) *chi.Mux {
	handler := occupancy.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func TestHandler_GetRoomStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := occupancyMocks.NewMockOccupancy(ctrl)
	router := newRouter(svc)

	t.Run("resolved", func(t *testing.T) {
		svc.EXPECT().
			Resolve(gomock.Any(), roomID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, asOf time.Time) (dto.RoomStatusResponse, error) {
				assert.Equal(t, "2024-03-10", asOf.Format(time.DateOnly))

				return dto.RoomStatusResponse{RoomID: roomID, RoomNumber: "101", Status: "occupied", Rule: "current_occupancy"}, nil
			})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/occupancy/rooms/"+roomID+"?as_of=2024-03-10", nil)
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Data dto.RoomStatusResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "occupied", body.Data.Status)
		assert.Equal(t, "current_occupancy", body.Data.Rule)
	})

	t.Run("unknown room", func(t *testing.T) {
		svc.EXPECT().
			Resolve(gomock.Any(), roomID, gomock.Any()).
			Return(dto.RoomStatusResponse{}, failure.NotFound(roomModel.EntityName))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/occupancy/rooms/"+roomID, nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid as_of", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/occupancy/rooms/"+roomID+"?as_of=yesterday", nil)
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetRoomStatus_MalformedID(t *testing.T) {
	ctrl := gomock.NewController(t)

	// No repository expectations: any read fails the test.
	svc := service.New(roomMocks.NewMockRoom(ctrl), bookingMocks.NewMockBooking(ctrl), mocks.NewOtel())
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/occupancy/rooms/not-a-uuid", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be a valid UUID")
}

func TestHandler_GetBoard(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := occupancyMocks.NewMockOccupancy(ctrl)
	router := newRouter(svc)

	svc.EXPECT().
		Board(gomock.Any(), gomock.Any()).
		Return(dto.BoardResponse{Summary: dto.SnapshotResponse{Total: 4, OccupancyRate: "50.00"}}, nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/occupancy", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"occupancy_rate":"50.00"`)
}

func TestHandler_GetAnomalies_ServiceError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := occupancyMocks.NewMockOccupancy(ctrl)
	router := newRouter(svc)

	svc.EXPECT().Anomalies(gomock.Any(), gomock.Any()).Return(dto.AnomalyReportResponse{}, assert.AnError)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/occupancy/anomalies", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}
