package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"galpao/infras/otel"
	"galpao/infras/postgres"
	"galpao/internal/domains/student/model"
	"galpao/shared"
	"galpao/shared/constant"
	gDto "galpao/shared/dto"
	"galpao/shared/logger"
	gRepo "galpao/shared/repository"
	"galpao/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Student interface {
	Insert(ctx context.Context, model model.Student) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Student, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Student, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	AdjustCreditsTx(ctx context.Context, sqltx *sqlx.Tx, id string, delta int, username string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Student]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Student {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Student](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// FilterByName matches the unique student name.
func FilterByName(name string) gDto.FilterGroup {
	return shared.FilterByField(name, model.FieldName, model.TableName)
}

// AdjustCreditsTx adds delta to the balance unless the result would go negative.
// It reports false when no row was changed.
func (r *repositoryImpl) AdjustCreditsTx(ctx context.Context, sqltx *sqlx.Tx, id string, delta int, username string) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".student.AdjustCreditsTx")
	defer scope.End()

	query := fmt.Sprintf(
		"UPDATE %s SET %s = %s + :delta, %s = :modified_at, %s = :modified_by WHERE %s = :id AND %s + :delta >= 0",
		model.TableName,
		model.FieldCredits, model.FieldCredits,
		constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID,
		model.FieldCredits,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := sqltx.NamedExecContext(ctx, query, map[string]any{
		"delta":       delta,
		"modified_at": timezone.Now(),
		"modified_by": username,
		"id":          id,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to adjust credits (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected == 1, nil
}
