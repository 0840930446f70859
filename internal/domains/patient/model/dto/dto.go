package dto

import (
	"time"

	"github.com/google/uuid"

	"medreg/infras/jwt"
	"medreg/internal/domains/patient/model"
	"medreg/shared"
	"medreg/shared/constant"
	gDto "medreg/shared/dto"
	gModel "medreg/shared/model"
	"medreg/shared/timezone"
)

type RegisterPatientRequest struct {
	Name      string `json:"name"       validate:"required,max=100"`
	IDCardNo  string `json:"id_card_no" validate:"required,min=6,max=30"`
	Phone     string `json:"phone"      validate:"required,min=6,max=20"`
	Password  string `json:"password"   validate:"required,min=8"`
	Gender    string `json:"gender"     validate:"omitempty,oneof=M F"`
	BirthDate string `json:"birth_date" validate:"omitempty,workdate"`
}

func (r *RegisterPatientRequest) ToModel(hashedPassword string) model.Patient {
	var birthDate *time.Time

	if r.BirthDate != constant.Empty {
		if parsed, err := time.Parse(constant.WorkDateFormat, r.BirthDate); err == nil {
			birthDate = &parsed
		}
	}

	return model.Patient{
		ID:           uuid.NewString(),
		Name:         r.Name,
		IDCardNo:     r.IDCardNo,
		Phone:        r.Phone,
		PasswordHash: hashedPassword,
		Gender:       r.Gender,
		BirthDate:    birthDate,
		Status:       model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type LoginPatientRequest struct {
	IDCardNo string `json:"id_card_no" validate:"required"`
	Password string `json:"password"   validate:"required"`
}

type LoginPatientResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (l *LoginPatientResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type UpdatePatientRequest struct {
	Name      string `db:"name"   json:"name"       validate:"omitempty,max=100"`
	Phone     string `db:"phone"  json:"phone"      validate:"omitempty,min=6,max=20"`
	Gender    string `db:"gender" json:"gender"     validate:"omitempty,oneof=M F"`
	BirthDate string `json:"birth_date"             validate:"omitempty,workdate"`
}

type PatientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IDCardNo  string `json:"id_card_no"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender"`
	BirthDate string `json:"birth_date,omitempty"`
	gDto.Metadata
}

func (r *PatientResponse) FromModel(model model.Patient) {
	r.ID = model.ID
	r.Name = model.Name
	r.IDCardNo = model.IDCardNo
	r.Phone = model.Phone
	r.Gender = model.Gender

	if model.BirthDate != nil {
		r.BirthDate = model.BirthDate.Format(constant.WorkDateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetPatientsResponse struct {
	Patients  []PatientResponse `json:"patients"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPatientsResponse) FromModels(models []model.Patient, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Patients = make([]PatientResponse, len(models))
	for i, mod := range models {
		r.Patients[i].FromModel(mod)
	}
}
