package checkin_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"galpao/infras/otel/mocks"
	checkinMocks "galpao/internal/domains/checkin/mocks"
	"galpao/internal/domains/checkin/model"
	"galpao/internal/domains/checkin/model/dto"
	"galpao/internal/handlers/checkin"
	"galpao/shared/constant"
	"galpao/shared/failure"
)

func newRouter(t *testing.T) (http.Handler, *checkinMocks.MockCheckinService) {
	ctrl := gomock.NewController(t)
	svc := checkinMocks.NewMockCheckinService(ctrl)

	handler := checkin.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), constant.ContextKeyUserName, "Ana")
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	handler.Router(router)

	return router, svc
}

func TestHandler_Book(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Book(gomock.Any(), "Ana", model.SlotEarly).Return(dto.CheckinResponse{
		Message: "check-in confirmed for 18:00-20:00",
		Slot:    model.SlotEarly,
		Date:    "2024-05-01",
		Credits: 2,
	}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkin/18:00-20:00", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data dto.CheckinResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Data.Credits)
	assert.Equal(t, model.SlotEarly, body.Data.Slot)
}

func TestHandler_BookEscapedSlot(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Book(gomock.Any(), "Ana", model.SlotLate).Return(dto.CheckinResponse{Slot: model.SlotLate}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkin/20%3A00-22%3A00", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_BookInvalidSlot(t *testing.T) {
	router, _ := newRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkin/06:00-07:00", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_BookSlotFull(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Book(gomock.Any(), "Ana", model.SlotEarly).Return(dto.CheckinResponse{}, failure.Conflict("slot is full, try another slot"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/checkin/18:00-20:00", nil))

	require.Equal(t, http.StatusConflict, rec.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "slot is full, try another slot", body.Error)
}

func TestHandler_CancelAfterCutoff(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Cancel(gomock.Any(), "Ana", model.SlotLate).
		Return(dto.CheckinResponse{}, failure.UnprocessableEntity("cancellation not allowed after 18:00 UTC"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cancelar/20:00-22:00", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandler_Status(t *testing.T) {
	router, svc := newRouter(t)

	svc.EXPECT().Status(gomock.Any(), "Ana").Return(dto.StatusResponse{Name: "Ana", Credits: 3}, nil).Times(2)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, "/painel_usuario", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
