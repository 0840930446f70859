package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medreg/infras/otel"
	"medreg/internal/domains/admin/model/dto"
	"medreg/internal/domains/admin/service"
	"medreg/shared/constant"
	"medreg/shared/failure"
	"medreg/shared/validator"
	"medreg/transport/http/response"
)

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admins", func(routerGroup chi.Router) {
		routerGroup.Post("/login", handler.LoginAdmin)
		routerGroup.Post("/password", handler.ChangePassword)
	})
}

// LoginAdmin authenticates an admin and issues a token pair.
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.LoginAdminRequest true "Login Admin Request"
// @Success 200 {object} response.Data[dto.LoginAdminResponse] "Token pair"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/admins/login [post]
func (handler *Handler) LoginAdmin(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".LoginAdmin")
	defer scope.End()

	req := dto.LoginAdminRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login admin")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// ChangePassword changes the authenticated admin's password.
// @Summary Change admin password
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Change Password Request"
// @Success 200 {object} response.Message "Password changed successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/admins/password [post]
// @Security BearerAuth
func (handler *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ChangePassword")
	defer scope.End()

	adminID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || adminID == "" {
		log.Error().Msg("failed to get admin ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	req := dto.ChangePasswordRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.ChangePassword(ctx, req, adminID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to change admin password")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Password changed successfully")
}
