package home

import (
	"galpao/config"
	"galpao/infras/otel"
	"galpao/internal/domains/checkin/model"
	checkinService "galpao/internal/domains/checkin/service"
	"galpao/shared/constant"
	"galpao/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	checkinService checkinService.Checkin
	cfg            *config.Config
	otel           otel.Otel
}

func New(checkinService checkinService.Checkin, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		checkinService: checkinService,
		cfg:            cfg,
		otel:           otel,
	}
}

type LandingResponse struct {
	Name            string       `json:"name"`
	Slots           []model.Slot `json:"slots"`
	Capacity        int          `json:"capacity"`
	CancelCutoffUTC string       `json:"cancel_cutoff_utc"`
	StudentLogin    string       `json:"student_login"`
	AdminLogin      string       `json:"admin_login"`
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/", handler.Landing)
}

// Landing describes the bookable slots and where to log in.
// @Summary Landing
// @Description Slots, capacity and login endpoints.
// @Tags Home
// @Produce json
// @Success 200 {object} response.Data[LandingResponse]
// @Router / [get]
func (handler *Handler) Landing(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Landing")
	defer scope.End()

	policy := handler.checkinService.Policy()

	response.WithJSON(w, http.StatusOK, LandingResponse{
		Name:            handler.cfg.App.Name,
		Slots:           model.Slots,
		Capacity:        policy.Capacity,
		CancelCutoffUTC: policy.Cutoff(),
		StudentLogin:    "/usuario",
		AdminLogin:      "/admin_login",
	})
}
