package dto

import (
	"github.com/google/uuid"

	"medreg/internal/domains/doctor/model"
	"medreg/shared"
	gDto "medreg/shared/dto"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

type CreateDoctorRequest struct {
	DepartmentID string `json:"department_id" validate:"required"`
	Name         string `json:"name"          validate:"required,max=100"`
	Title        string `json:"title"         validate:"omitempty,max=100"`
	Specialty    string `json:"specialty"     validate:"omitempty,max=200"`
	Intro        string `json:"intro"         validate:"omitempty,max=500"`
}

func (c *CreateDoctorRequest) ToModel() model.Doctor {
	return model.Doctor{
		ID:           uuid.NewString(),
		DepartmentID: c.DepartmentID,
		Name:         c.Name,
		Title:        c.Title,
		Specialty:    c.Specialty,
		Intro:        c.Intro,
		Status:       model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateDoctorRequest struct {
	DepartmentID string `db:"department_id" json:"department_id" validate:"omitempty"`
	Name         string `db:"name"          json:"name"          validate:"omitempty,max=100"`
	Title        string `db:"title"         json:"title"         validate:"omitempty,max=100"`
	Specialty    string `db:"specialty"     json:"specialty"     validate:"omitempty,max=200"`
	Intro        string `db:"intro"         json:"intro"         validate:"omitempty,max=500"`
}

type DoctorResponse struct {
	ID             string `json:"id"`
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
	Name           string `json:"name"`
	Title          string `json:"title"`
	Specialty      string `json:"specialty"`
	Intro          string `json:"intro"`
	gDto.Metadata
}

func (r *DoctorResponse) FromModel(model model.DoctorDetail) {
	r.ID = model.ID
	r.DepartmentID = model.DepartmentID
	r.DepartmentName = model.DepartmentName
	r.Name = model.Name
	r.Title = model.Title
	r.Specialty = model.Specialty
	r.Intro = model.Intro
	r.Metadata.FromModel(model.Metadata)
}

type GetDoctorsResponse struct {
	Doctors   []DoctorResponse `json:"doctors"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetDoctorsResponse) FromModels(models []model.DoctorDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Doctors = make([]DoctorResponse, len(models))
	for i, mod := range models {
		r.Doctors[i].FromModel(mod)
	}
}
