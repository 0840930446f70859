package registration

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medreg/infras/otel"
	"medreg/internal/domains/registration/model"
	"medreg/internal/domains/registration/model/dto"
	"medreg/internal/domains/registration/service"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	"medreg/shared/validator"
	"medreg/transport/http/response"
)

type Handler struct {
	service service.Registration
	otel    otel.Otel
}

func New(service service.Registration, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/registrations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRegistration)
		routerGroup.Get("/", handler.GetRegistrations)
		routerGroup.Get("/mine", handler.GetMyRegistrations)
		routerGroup.Get("/statistics", handler.GetStatistics)
		routerGroup.Get("/{id}", handler.GetRegistrationByID)
		routerGroup.Post("/{id}/cancel", handler.CancelRegistration)
		routerGroup.Post("/{id}/finish", handler.FinishRegistration)
	})
}

// CreateRegistration books one unit of a schedule's quota for a patient.
// @Summary Create a new registration
// @Description Register a patient on a schedule. Consumes one unit of quota and assigns a registration number and queue number.
// @Tags Registration
// @Accept json
// @Produce json
// @Param request body dto.CreateRegistrationRequest true "Create Registration Request"
// @Success 201 {object} response.Data[dto.RegistrationResponse] "Created registration"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/registrations [post]
// @Security BearerAuth
func (handler *Handler) CreateRegistration(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRegistration")
	defer scope.End()

	req := dto.CreateRegistrationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	registration, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create registration")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Registration created: " + registration.RegNo)

	response.WithJSON(writer, http.StatusCreated, registration)
}

// GetRegistrations retrieves all registrations.
// @Summary Get all registrations
// @Description Retrieve registrations with optional schedule, patient and status filters plus pagination.
// @Tags Registration
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param schedule_id query string false "Filter by schedule ID"
// @Param patient_id query string false "Filter by patient ID"
// @Param status query string false "Filter by status (BOOKED, CANCELLED, FINISHED)"
// @Success 200 {object} response.Data[dto.GetRegistrationsResponse] "List of registrations"
// @Failure 500 {object} response.Error
// @Router /v1/registrations [get]
// @Security BearerAuth
func (handler *Handler) GetRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRegistrations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if scheduleID := r.URL.Query().Get(model.FieldScheduleID); scheduleID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldScheduleID,
			Operator: gDto.FilterOperatorEq,
			Value:    scheduleID,
			Table:    model.TableName,
		})
	}

	if patientID := r.URL.Query().Get(model.FieldPatientID); patientID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPatientID,
			Operator: gDto.FilterOperatorEq,
			Value:    patientID,
			Table:    model.TableName,
		})
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	registrations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get registrations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, registrations)
}

// GetMyRegistrations retrieves registrations for the authenticated patient.
// @Summary Get my registrations
// @Tags Registration
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetRegistrationsResponse] "List of the patient's registrations"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/registrations/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyRegistrations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyRegistrations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	registrations, err := handler.service.GetByPatient(ctx, userID, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get patient registrations")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, registrations)
}

// GetStatistics retrieves the registration rollup for the admin dashboard.
// @Summary Get registration statistics
// @Tags Registration
// @Produce json
// @Success 200 {object} response.Data[dto.StatisticsResponse] "Registration statistics"
// @Failure 500 {object} response.Error
// @Router /v1/registrations/statistics [get]
// @Security BearerAuth
func (handler *Handler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatistics")
	defer scope.End()

	statistics, err := handler.service.Statistics(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get registration statistics")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, statistics)
}

// GetRegistrationByID retrieves a registration by its ID.
// @Summary Get a registration by ID
// @Tags Registration
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Data[dto.RegistrationResponse] "Registration details"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/registrations/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRegistrationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRegistrationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	registration, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get registration by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, registration)
}

// CancelRegistration cancels a booked registration.
// @Summary Cancel a registration
// @Description Cancel a booked registration and restore its quota unit. Closed from one hour before the visit starts.
// @Tags Registration
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Message "Registration cancelled successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/registrations/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) CancelRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelRegistration")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel registration")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Registration cancelled successfully")
}

// FinishRegistration marks a booked registration as attended.
// @Summary Finish a registration
// @Tags Registration
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} response.Message "Registration finished successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/registrations/{id}/finish [post]
// @Security BearerAuth
func (handler *Handler) FinishRegistration(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".FinishRegistration")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Finish(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to finish registration")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Registration finished successfully")
}
