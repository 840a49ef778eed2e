package admin

import (
	"galpao/infras/otel"
	adminDto "galpao/internal/domains/admin/model/dto"
	adminService "galpao/internal/domains/admin/service"
	checkinDto "galpao/internal/domains/checkin/model/dto"
	checkinService "galpao/internal/domains/checkin/service"
	studentDto "galpao/internal/domains/student/model/dto"
	studentService "galpao/internal/domains/student/service"
	"galpao/shared/constant"
	gDto "galpao/shared/dto"
	"galpao/shared/validator"
	"galpao/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	adminService   adminService.Admin
	studentService studentService.Student
	checkinService checkinService.Checkin
	otel           otel.Otel
}

func New(
	adminService adminService.Admin,
	studentService studentService.Student,
	checkinService checkinService.Checkin,
	otel otel.Otel,
) Handler {
	return Handler{
		adminService:   adminService,
		studentService: studentService,
		checkinService: checkinService,
		otel:           otel,
	}
}

type DashboardResponse struct {
	Students studentDto.GetStudentsResponse `json:"students"`
	Summary  checkinDto.SummaryResponse     `json:"summary"`
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/admin", handler.Dashboard)
	r.Post("/admin", handler.RegisterStudent)
	r.Put("/admin/password", handler.ChangePassword)
}

// Dashboard lists the students and the check-in summary.
// @Summary Admin dashboard
// @Description Students ordered by name plus today's and the trailing week's check-ins.
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[DashboardResponse]
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin [get]
// @Security BearerAuth
func (handler *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Dashboard")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	students, err := handler.studentService.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get students")

		response.WithError(w, err)

		return
	}

	summary, err := handler.checkinService.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get check-in summary")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, DashboardResponse{Students: students, Summary: summary})
}

// RegisterStudent registers a student or updates an existing one.
// @Summary Register student
// @Description Insert a student, or overwrite payment, credits and password when the name exists.
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body studentDto.RegisterStudentRequest true "Register Student Request"
// @Success 200 {object} response.Data[studentDto.RegisterStudentResponse] "Student updated"
// @Success 201 {object} response.Data[studentDto.RegisterStudentResponse] "Student registered"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin [post]
// @Security BearerAuth
func (handler *Handler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterStudent")
	defer scope.End()

	req := studentDto.RegisterStudentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.studentService.Register(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register student")

		response.WithError(w, err)

		return
	}

	code := http.StatusCreated
	if res.Updated {
		code = http.StatusOK
	}

	scope.AddEvent("Student registered")

	response.WithJSON(w, code, res)
}

// ChangePassword replaces the administrator password.
// @Summary Change admin password
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body adminDto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /admin/password [put]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	req := adminDto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.adminService.ChangePassword(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change admin password")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Admin password changed")

	response.WithMessage(w, http.StatusOK, "password changed")
}
