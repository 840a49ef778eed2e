package auth

import (
	"galpao/infras/otel"
	adminDto "galpao/internal/domains/admin/model/dto"
	"galpao/internal/domains/auth/model/dto"
	"galpao/internal/domains/auth/service"
	"galpao/shared/constant"
	"galpao/shared/failure"
	"galpao/shared/validator"
	"galpao/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Auth
	otel    otel.Otel
}

func New(service service.Auth, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

type LoginInstructions struct {
	Message string   `json:"message"`
	Fields  []string `json:"fields"`
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/usuario", handler.StudentLoginForm)
	r.Post("/usuario", handler.StudentLogin)
	r.Get("/admin_login", handler.AdminLoginForm)
	r.Post("/admin_login", handler.AdminLogin)
	r.Post("/refresh_token", handler.RefreshToken)
	r.Get("/logout", handler.Logout)
}

// StudentLoginForm describes the student login payload.
// @Summary Student login instructions
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[LoginInstructions]
// @Router /usuario [get]
func (handler *Handler) StudentLoginForm(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, LoginInstructions{
		Message: "POST your name and password to log in",
		Fields:  []string{"name", "password"},
	})
}

// StudentLogin handles student login
// @Summary Student login
// @Description Log in with the registered name and password.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.StudentLoginRequest true "Student Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /usuario [post]
func (handler *Handler) StudentLogin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".StudentLogin")
	defer scope.End()

	req := dto.StudentLoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.StudentLogin(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Student logged in")

	response.WithJSON(w, http.StatusOK, res)
}

// AdminLoginForm describes the admin login payload.
// @Summary Admin login instructions
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Data[LoginInstructions]
// @Router /admin_login [get]
func (handler *Handler) AdminLoginForm(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, LoginInstructions{
		Message: "POST the administrator password to log in",
		Fields:  []string{"password"},
	})
}

// AdminLogin handles administrator login
// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body adminDto.LoginRequest true "Admin Login Request"
// @Success 200 {object} response.Data[dto.LoginResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin_login [post]
func (handler *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AdminLogin")
	defer scope.End()

	req := adminDto.LoginRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AdminLogin(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin logged in")

	response.WithJSON(w, http.StatusOK, res)
}

// RefreshToken handles token refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new pair. The old refresh token stops working.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.RefreshTokenResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /refresh_token [post]
func (handler *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Token refreshed")

	response.WithJSON(w, http.StatusOK, res)
}

// Logout revokes the access token of the request
// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /logout [get]
// @Security BearerAuth
func (handler *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Logout")
	defer scope.End()

	tokenID, _ := ctx.Value(constant.ContextKeyTokenID).(string)
	expiresAt, _ := ctx.Value(constant.ContextKeyExpiresAt).(time.Time)

	if tokenID == constant.Empty {
		err := failure.Unauthorized("missing session token")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Logout(ctx, dto.Session{TokenID: tokenID, ExpiresAt: expiresAt}); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to logout")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Logged out")

	response.WithMessage(w, http.StatusOK, "logged out")
}
