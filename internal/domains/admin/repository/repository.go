package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"galpao/infras/otel"
	"galpao/infras/postgres"
	"galpao/internal/domains/admin/model"
	"galpao/shared"
	gDto "galpao/shared/dto"
	gRepo "galpao/shared/repository"
)

type Admin interface {
	Insert(ctx context.Context, model model.AdminConfig) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AdminConfig, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AdminConfig]
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AdminConfig](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func FilterByKey(key string) gDto.FilterGroup {
	return shared.FilterByField(key, model.FieldKey, model.TableName)
}
