package patient

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"medreg/infras/otel"
	"medreg/internal/domains/patient/model"
	"medreg/internal/domains/patient/model/dto"
	"medreg/internal/domains/patient/service"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	"medreg/shared/failure"
	"medreg/shared/validator"
	"medreg/transport/http/response"
)

type Handler struct {
	service service.Patient
	otel    otel.Otel
}

func New(service service.Patient, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/patients", func(routerGroup chi.Router) {
		routerGroup.Post("/register", handler.RegisterPatient)
		routerGroup.Post("/login", handler.LoginPatient)
		routerGroup.Post("/refresh", handler.RefreshToken)
		routerGroup.Get("/me", handler.GetProfile)
		routerGroup.Patch("/me", handler.UpdateProfile)
		routerGroup.Get("/", handler.GetPatients)
		routerGroup.Get("/{id}", handler.GetPatientByID)
	})
}

// RegisterPatient creates a new patient account.
// @Summary Register a new patient
// @Description Create a patient account. ID card number and phone must be unique.
// @Tags Patient
// @Accept json
// @Produce json
// @Param request body dto.RegisterPatientRequest true "Register Patient Request"
// @Success 201 {object} response.Message "Patient registered successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/patients/register [post]
func (handler *Handler) RegisterPatient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RegisterPatient")
	defer scope.End()

	req := dto.RegisterPatientRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Register(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to register patient")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusCreated, "Patient registered successfully")
}

// LoginPatient authenticates a patient and issues a token pair.
// @Summary Patient login
// @Tags Patient
// @Accept json
// @Produce json
// @Param request body dto.LoginPatientRequest true "Login Patient Request"
// @Success 200 {object} response.Data[dto.LoginPatientResponse] "Token pair"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/patients/login [post]
func (handler *Handler) LoginPatient(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".LoginPatient")
	defer scope.End()

	req := dto.LoginPatientRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Login(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to login patient")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// RefreshToken exchanges a refresh token for a new token pair.
// @Summary Refresh patient tokens
// @Tags Patient
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token Request"
// @Success 200 {object} response.Data[dto.LoginPatientResponse] "New token pair"
// @Failure 401 {object} response.Error
// @Router /v1/patients/refresh [post]
func (handler *Handler) RefreshToken(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RefreshToken")
	defer scope.End()

	req := dto.RefreshTokenRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.RefreshToken(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to refresh patient tokens")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetProfile retrieves the authenticated patient's profile.
// @Summary Get my profile
// @Tags Patient
// @Produce json
// @Success 200 {object} response.Data[dto.PatientResponse] "Patient profile"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/patients/me [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	patient, err := handler.service.Get(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get patient profile")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, patient)
}

// UpdateProfile updates the authenticated patient's profile.
// @Summary Update my profile
// @Tags Patient
// @Accept json
// @Produce json
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Message "Profile updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/patients/me [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfile")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	req := dto.UpdatePatientRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, userID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update patient profile")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Profile updated successfully")
}

// GetPatients retrieves all patients.
// @Summary Get all patients
// @Description Retrieve patients with optional keyword search and pagination. Admin only.
// @Tags Patient
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param keyword query string false "Search by patient name"
// @Success 200 {object} response.Data[dto.GetPatientsResponse] "List of patients"
// @Failure 500 {object} response.Error
// @Router /v1/patients [get]
// @Security BearerAuth
func (handler *Handler) GetPatients(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPatients")
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

	patients, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get patients")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, patients)
}

// GetPatientByID retrieves a patient by its ID.
// @Summary Get a patient by ID
// @Tags Patient
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Data[dto.PatientResponse] "Patient details"
// @Failure 404 {object} response.Error
// @Router /v1/patients/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPatientByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPatientByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	patient, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get patient by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, patient)
}
