package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"galpao/infras/otel"
	"galpao/infras/postgres"
	"galpao/internal/domains/checkin/model"
	"galpao/shared/constant"
	gDto "galpao/shared/dto"
	"galpao/shared/logger"
	gRepo "galpao/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Checkin interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Checkin) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Checkin, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Checkin, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int64, error)
	CountSlotTx(ctx context.Context, sqltx *sqlx.Tx, day string, slot model.Slot) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Checkin]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Checkin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Checkin](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountSlotTx takes a transaction-scoped advisory lock on (day, slot) and counts its
// reservations, so concurrent bookings of one slot are serialized until commit.
func (r *repositoryImpl) CountSlotTx(ctx context.Context, sqltx *sqlx.Tx, day string, slot model.Slot) (int, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".checkin.CountSlotTx")
	defer scope.End()

	args := map[string]any{
		"lock_key":     fmt.Sprintf("%s:%s:%s", model.TableName, day, slot),
		"checkin_date": day,
		"slot":         slot,
	}

	if _, err := sqltx.NamedExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext(:lock_key))", args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to lock slot (%s): %w", model.EntityName, err)
	}

	query := fmt.Sprintf(
		"SELECT COUNT(%s) FROM %s WHERE %s = :checkin_date AND %s = :slot",
		model.FieldID, model.TableName, model.FieldDate, model.FieldSlot,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	prepare, err := sqltx.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	var count int

	if err = prepare.GetContext(ctx, &count, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to count slot (%s): %w", model.EntityName, err)
	}

	return count, nil
}
