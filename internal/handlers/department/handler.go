package department

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medreg/infras/otel"
	"medreg/internal/domains/department/model"
	"medreg/internal/domains/department/model/dto"
	"medreg/internal/domains/department/service"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/validator"
	"medreg/transport/http/response"
)

type Handler struct {
	service service.Department
	otel    otel.Otel
}

func New(service service.Department, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/departments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDepartment)
		routerGroup.Get("/", handler.GetDepartments)
		routerGroup.Get("/{id}", handler.GetDepartmentByID)
		routerGroup.Patch("/{id}", handler.UpdateDepartment)
		routerGroup.Delete("/{id}", handler.DeleteDepartment)
	})
}

// CreateDepartment handles the creation of a new department.
// @Summary Create a new department
// @Description Create a new hospital department. Reactivates a previously deleted department with the same name.
// @Tags Department
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Create Department Request"
// @Success 201 {object} response.Message "Department created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments [post]
// @Security BearerAuth
func (handler *Handler) CreateDepartment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDepartment")
	defer scope.End()

	req := dto.CreateDepartmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create department")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Department created successfully")
}

// GetDepartments retrieves all departments.
// @Summary Get all departments
// @Description Retrieve departments with optional keyword search and pagination.
// @Tags Department
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param keyword query string false "Search by department name"
// @Success 200 {object} response.Data[dto.GetDepartmentsResponse] "List of departments"
// @Failure 500 {object} response.Error
// @Router /v1/departments [get]
func (handler *Handler) GetDepartments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartments")
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

	if keyword := r.URL.Query().Get(constant.RequestParamKeyword); keyword != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    keyword,
			Table:    model.TableName,
		})
	}

	departments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get departments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, departments)
}

// GetDepartmentByID retrieves a department by its ID.
// @Summary Get a department by ID
// @Tags Department
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Data[dto.DepartmentResponse] "Department details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments/{id} [get]
func (handler *Handler) GetDepartmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDepartmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	department, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get department by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, department)
}

// UpdateDepartment updates an existing department.
// @Summary Update a department
// @Tags Department
// @Accept json
// @Produce json
// @Param id path string true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Update Department Request"
// @Success 200 {object} response.Message "Department updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDepartment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDepartmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update department")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Department updated successfully")
}

// DeleteDepartment soft-deletes a department.
// @Summary Delete a department
// @Tags Department
// @Produce json
// @Param id path string true "Department ID"
// @Success 200 {object} response.Message "Department deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/departments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDepartment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete department")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Department deleted successfully")
}
