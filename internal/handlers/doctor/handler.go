package doctor

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medreg/infras/otel"
	"medreg/internal/domains/doctor/model"
	"medreg/internal/domains/doctor/model/dto"
	"medreg/internal/domains/doctor/service"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/validator"
	"medreg/transport/http/response"
)

type Handler struct {
	service service.Doctor
	otel    otel.Otel
}

func New(service service.Doctor, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/doctors", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDoctor)
		routerGroup.Get("/", handler.GetDoctors)
		routerGroup.Get("/{id}", handler.GetDoctorByID)
		routerGroup.Patch("/{id}", handler.UpdateDoctor)
		routerGroup.Delete("/{id}", handler.DeleteDoctor)
	})
}

// CreateDoctor handles the creation of a new doctor.
// @Summary Create a new doctor
// @Tags Doctor
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Message "Doctor created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors [post]
// @Security BearerAuth
func (handler *Handler) CreateDoctor(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDoctor")
	defer scope.End()

	req := dto.CreateDoctorRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create doctor")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Doctor created successfully")
}

// GetDoctors retrieves all doctors.
// @Summary Get all doctors
// @Description Retrieve doctors with optional department filter, keyword search and pagination.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param department_id query string false "Filter by department ID"
// @Param keyword query string false "Search by doctor name"
// @Success 200 {object} response.Data[dto.GetDoctorsResponse] "List of doctors"
// @Failure 500 {object} response.Error
// @Router /v1/doctors [get]
func (handler *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    model.StatusActive,
				Table:    model.TableName,
			},
		},
	}

	if departmentID := r.URL.Query().Get(model.FieldDepartmentID); departmentID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDepartmentID,
			Operator: gDto.FilterOperatorEq,
			Value:    departmentID,
			Table:    model.TableName,
		})
	}

	if keyword := r.URL.Query().Get(constant.RequestParamKeyword); keyword != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    keyword,
			Table:    model.TableName,
		})
	}

	doctors, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, doctors)
}

// GetDoctorByID retrieves a doctor by its ID.
// @Summary Get a doctor by ID
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Data[dto.DoctorResponse] "Doctor details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [get]
func (handler *Handler) GetDoctorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	doctor, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, doctor)
}

// UpdateDoctor updates an existing doctor.
// @Summary Update a doctor
// @Tags Doctor
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param request body dto.UpdateDoctorRequest true "Update Doctor Request"
// @Success 200 {object} response.Message "Doctor updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDoctorRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update doctor")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Doctor updated successfully")
}

// DeleteDoctor soft-deletes a doctor.
// @Summary Delete a doctor
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Message "Doctor deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDoctor")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete doctor")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Doctor deleted successfully")
}
