package checkin

import (
	"galpao/infras/otel"
	"galpao/internal/domains/checkin/model"
	"galpao/internal/domains/checkin/model/dto"
	"galpao/internal/domains/checkin/service"
	"galpao/shared/constant"
	"galpao/shared/failure"
	"galpao/shared/validator"
	"galpao/transport/http/response"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Checkin
	otel    otel.Otel
}

func New(service service.Checkin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/painel_usuario", handler.Status)
	r.Post("/painel_usuario", handler.Status)
	r.Get("/checkin/{slot}", handler.Book)
	r.Get("/cancelar/{slot}", handler.Cancel)
}

// Status shows the student's credits and today's slots.
// @Summary Student panel
// @Description Credits, remaining places per slot and whether cancelling is still allowed.
// @Tags Checkin
// @Produce json
// @Success 200 {object} response.Data[dto.StatusResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /painel_usuario [get]
// @Security BearerAuth
func (handler *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Status")
	defer scope.End()

	name, _ := ctx.Value(constant.ContextKeyUserName).(string)

	res, err := handler.service.Status(ctx, name)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get student status")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Book reserves a place in today's slot.
// @Summary Book slot
// @Description Spend one credit to reserve a place in today's slot.
// @Tags Checkin
// @Produce json
// @Param slot path string true "Slot" Enums(18:00-20:00, 20:00-22:00)
// @Success 200 {object} response.Data[dto.CheckinResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /checkin/{slot} [get]
// @Security BearerAuth
func (handler *Handler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Book")
	defer scope.End()

	slot, err := slotParam(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	name, _ := ctx.Value(constant.ContextKeyUserName).(string)

	res, err := handler.service.Book(ctx, name, slot)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("student", name).Str("slot", string(slot)).Msg("booking rejected")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Slot booked")

	response.WithJSON(w, http.StatusOK, res)
}

// Cancel drops today's reservation and refunds the credit.
// @Summary Cancel reservation
// @Description Cancel today's reservation before the cutoff and get the credit back.
// @Tags Checkin
// @Produce json
// @Param slot path string true "Slot" Enums(18:00-20:00, 20:00-22:00)
// @Success 200 {object} response.Data[dto.CheckinResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /cancelar/{slot} [get]
// @Security BearerAuth
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	slot, err := slotParam(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	name, _ := ctx.Value(constant.ContextKeyUserName).(string)

	res, err := handler.service.Cancel(ctx, name, slot)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("student", name).Str("slot", string(slot)).Msg("cancellation rejected")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation cancelled")

	response.WithJSON(w, http.StatusOK, res)
}

func slotParam(r *http.Request) (model.Slot, error) {
	raw, err := url.PathUnescape(chi.URLParam(r, constant.RequestParamSlot))
	if err != nil {
		return "", failure.BadRequestFromString("invalid slot")
	}

	req := dto.SlotRequest{Slot: model.Slot(raw)}
	if err := validator.ValidateStruct(&req); err != nil {
		return "", err
	}

	return req.Slot, nil
}
