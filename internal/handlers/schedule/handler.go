package schedule

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medreg/infras/otel"
	"medreg/internal/domains/schedule/model"
	"medreg/internal/domains/schedule/model/dto"
	"medreg/internal/domains/schedule/service"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/validator"
	"medreg/transport/http/response"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedules", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSchedule)
		routerGroup.Get("/", handler.GetSchedules)
		routerGroup.Get("/available", handler.GetAvailableSchedules)
		routerGroup.Get("/doctors/{id}/week", handler.GetDoctorWeek)
		routerGroup.Get("/{id}", handler.GetScheduleByID)
		routerGroup.Patch("/{id}", handler.UpdateSchedule)
		routerGroup.Delete("/{id}", handler.DeleteSchedule)
	})
}

// CreateSchedule handles the creation of a new schedule.
// @Summary Create a new schedule
// @Description Create a schedule for a doctor on a work date and time slot. Reactivates a previously deleted schedule for the same doctor, date and slot with the remaining quota recomputed from live registrations.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Message "Schedule created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules [post]
// @Security BearerAuth
func (handler *Handler) CreateSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSchedule")
	defer scope.End()

	req := dto.CreateScheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create schedule")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Schedule created successfully")
}

func buildScheduleFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if doctorID := r.URL.Query().Get(model.FieldDoctorID); doctorID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDoctorID,
			Operator: gDto.FilterOperatorEq,
			Value:    doctorID,
			Table:    model.TableName,
		})
	}

	if workDate := r.URL.Query().Get(model.FieldWorkDate); workDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldWorkDate,
			Operator: gDto.FilterOperatorEq,
			Value:    workDate,
			Table:    model.TableName,
		})
	}

	if timeSlot := r.URL.Query().Get(model.FieldTimeSlot); timeSlot != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTimeSlot,
			Operator: gDto.FilterOperatorEq,
			Value:    timeSlot,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// GetSchedules retrieves all schedules.
// @Summary Get all schedules
// @Description Retrieve schedules with optional doctor, date and slot filters plus pagination.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param doctor_id query string false "Filter by doctor ID"
// @Param work_date query string false "Filter by work date (YYYY-MM-DD)"
// @Param time_slot query string false "Filter by time slot (AM or PM)"
// @Success 200 {object} response.Data[dto.GetSchedulesResponse] "List of schedules"
// @Failure 500 {object} response.Error
// @Router /v1/schedules [get]
func (handler *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := buildScheduleFilter(r)
	filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
		Field:    model.FieldStatus,
		Operator: gDto.FilterOperatorEq,
		Value:    model.StatusActive,
		Table:    model.TableName,
	})

	schedules, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedules")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, schedules)
}

// GetAvailableSchedules retrieves schedules that still have quota left.
// @Summary Get available schedules
// @Description Retrieve active schedules with remaining quota, with optional doctor, date and slot filters.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param doctor_id query string false "Filter by doctor ID"
// @Param work_date query string false "Filter by work date (YYYY-MM-DD)"
// @Param time_slot query string false "Filter by time slot (AM or PM)"
// @Success 200 {object} response.Data[dto.GetSchedulesResponse] "List of available schedules"
// @Failure 500 {object} response.Error
// @Router /v1/schedules/available [get]
func (handler *Handler) GetAvailableSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSchedules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	schedules, err := handler.service.GetAvailable(ctx, queryParams, buildScheduleFilter(r))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available schedules")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, schedules)
}

// GetDoctorWeek retrieves one doctor's schedules for a seven-day window.
// @Summary Get a doctor's week of schedules
// @Tags Schedule
// @Produce json
// @Param id path string true "Doctor ID"
// @Param from query string true "Window start date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetSchedulesResponse] "Doctor's schedules"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/doctors/{id}/week [get]
func (handler *Handler) GetDoctorWeek(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorWeek")
	defer scope.End()

	doctorID := chi.URLParam(r, constant.RequestParamID)
	from := r.URL.Query().Get("from")

	schedules, err := handler.service.GetDoctorWeek(ctx, doctorID, from)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor week schedules")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, schedules)
}

// GetScheduleByID retrieves a schedule by its ID.
// @Summary Get a schedule by ID
// @Tags Schedule
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Data[dto.ScheduleResponse] "Schedule details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [get]
func (handler *Handler) GetScheduleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetScheduleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	schedule, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, schedule)
}

// UpdateSchedule updates a schedule's quota or fee.
// @Summary Update a schedule
// @Description Update a schedule's total quota or fee. Remaining quota is recomputed from live registrations; edits below current occupancy are rejected.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Update Schedule Request"
// @Success 200 {object} response.Message "Schedule updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateScheduleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update schedule")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Schedule updated successfully")
}

// DeleteSchedule soft-deletes a schedule.
// @Summary Delete a schedule
// @Tags Schedule
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Message "Schedule deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete schedule")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Schedule deleted successfully")
}
