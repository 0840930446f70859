package dto

import (
	"github.com/google/uuid"

	"medreg/internal/domains/department/model"
	"medreg/shared"
	gDto "medreg/shared/dto"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

type CreateDepartmentRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Intro    string `json:"intro"    validate:"omitempty,max=500"`
	Location string `json:"location" validate:"omitempty,max=100"`
}

func (c *CreateDepartmentRequest) ToModel() model.Department {
	return model.Department{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Intro:    c.Intro,
		Location: c.Location,
		Status:   model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateDepartmentRequest struct {
	Name     string `db:"name"     json:"name"     validate:"omitempty,max=100"`
	Intro    string `db:"intro"    json:"intro"    validate:"omitempty,max=500"`
	Location string `db:"location" json:"location" validate:"omitempty,max=100"`
}

type DepartmentResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Intro    string `json:"intro"`
	Location string `json:"location"`
	gDto.Metadata
}

func (r *DepartmentResponse) FromModel(model model.Department) {
	r.ID = model.ID
	r.Name = model.Name
	r.Intro = model.Intro
	r.Location = model.Location
	r.Metadata.FromModel(model.Metadata)
}

type GetDepartmentsResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetDepartmentsResponse) FromModels(models []model.Department, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Departments = make([]DepartmentResponse, len(models))
	for i, mod := range models {
		r.Departments[i].FromModel(mod)
	}
}
