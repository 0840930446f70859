package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"medreg/infras/otel"
	"medreg/infras/postgres"
	"medreg/internal/domains/doctor/model"
	gDto "medreg/shared/dto"
	gRepo "medreg/shared/repository"
)

type Doctor interface {
	Insert(ctx context.Context, model model.Doctor) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.DoctorDetail, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.DoctorDetail, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.DoctorDetail]
	base gRepo.Repository[model.Doctor]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Doctor {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.DoctorDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		base:       gRepo.NewRepository[model.Doctor](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Insert writes through the joinless base repository so only the doctors
// columns participate.
func (repo *repositoryImpl) Insert(ctx context.Context, model model.Doctor) error {
	return repo.base.Insert(ctx, model) //nolint:wrapcheck
}

func (repo *repositoryImpl) Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error {
	return repo.base.Update(ctx, req, filter) //nolint:wrapcheck
}
