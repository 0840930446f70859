package router

import (
	"github.com/go-chi/chi/v5"

	"medreg/internal/handlers/admin"
	"medreg/internal/handlers/department"
	"medreg/internal/handlers/doctor"
	"medreg/internal/handlers/patient"
	"medreg/internal/handlers/registration"
	"medreg/internal/handlers/schedule"
)

type DomainHandlers struct {
	Admin        admin.Handler
	Patient      patient.Handler
	Department   department.Handler
	Doctor       doctor.Handler
	Schedule     schedule.Handler
	Registration registration.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Admin.Router(routerGroup)
		r.DomainHandlers.Patient.Router(routerGroup)
		r.DomainHandlers.Department.Router(routerGroup)
		r.DomainHandlers.Doctor.Router(routerGroup)
		r.DomainHandlers.Schedule.Router(routerGroup)
		r.DomainHandlers.Registration.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
