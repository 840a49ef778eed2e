package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"galpao/infras/otel"
	"galpao/infras/postgres"
	"galpao/shared/constant"
	"galpao/shared/dto"
	"galpao/shared/logger"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

var errRequiredFilter = errors.New("required filter")

type column struct {
	name  string
	table string
	alias string
}

func (c column) selectExpr() string {
	if c.alias != "" {
		return fmt.Sprintf("%s.%s AS %s", c.table, c.name, c.alias)
	}

	return fmt.Sprintf("%s.%s", c.table, c.name)
}

type execer interface {
	NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error)
}

// Joiner is implemented by models that read columns from other tables.
type Joiner interface {
	GetJoinQuery() string
}

// Repository is a generic sqlx repository over one table. Columns come from the
// db tags of T; fields tagged with table/column are read from joined tables.
type Repository[T any] struct {
	db            *postgres.Connection
	otel          otel.Otel
	table         string
	entity        string
	primaryColumn string
	columns       []column
	join          string
	InsertColumns []string
}

func NewRepository[T any](entityName, tableName, primaryColumn string, dbConnection *postgres.Connection, otl otel.Otel) Repository[T] {
	var zero T

	columns, insertColumns := getColumns(tableName, reflect.TypeOf(zero))

	join := ""
	if joiner, ok := any(zero).(Joiner); ok {
		join = joiner.GetJoinQuery()
	}

	return Repository[T]{
		db:            dbConnection,
		otel:          otl,
		table:         tableName,
		entity:        entityName,
		primaryColumn: primaryColumn,
		columns:       columns,
		join:          join,
		InsertColumns: insertColumns,
	}
}

func (repo *Repository[T]) scope(ctx context.Context, op string) (context.Context, otel.Scope) {
	return repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entity, op))
}

func (repo *Repository[T]) fail(scope otel.Scope, action string, err error) error {
	logger.ErrorWithStack(err)
	scope.TraceError(err)

	return fmt.Errorf("failed to %s (%s): %w", action, repo.entity, err)
}

// query joins the non-empty parts of a statement with single spaces.
func query(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(part string) bool { return part == "" }), " ")
}

// where renders the filter as a WHERE clause, empty when the filter is.
func where(filter dto.FilterGroup) (string, map[string]any) {
	clause, args := filter.GetWhereClause()
	if clause == "" {
		return "", map[string]any{}
	}

	return "WHERE " + clause, args
}

// read prepares a named statement on the read pool and scans into dest.
// With many set it scans every row, otherwise exactly one.
func (repo *Repository[T]) read(ctx context.Context, scope otel.Scope, stmt string, args map[string]any, dest any, many bool) error {
	scope.SetAttribute(constant.OtelQueryAttributeKey, stmt)

	prepared, err := repo.db.Read.PrepareNamedContext(ctx, stmt)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer prepared.Close()

	if many {
		return prepared.SelectContext(ctx, dest, args) //nolint:wrapcheck
	}

	return prepared.GetContext(ctx, dest, args) //nolint:wrapcheck
}

// write runs stmt and reports how many rows it touched.
func (repo *Repository[T]) write(ctx context.Context, scope otel.Scope, exec execer, action, stmt string, arg any) (int64, error) {
	scope.SetAttribute(constant.OtelQueryAttributeKey, stmt)

	res, err := exec.NamedExecContext(ctx, stmt, arg)
	if err != nil {
		return 0, repo.fail(scope, action, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, repo.fail(scope, action, err)
	}

	return affected, nil
}

func (repo *Repository[T]) insert(ctx context.Context, exec execer, model T) error {
	ctx, scope := repo.scope(ctx, "insert")
	defer scope.End()

	placeholders := make([]string, len(repo.InsertColumns))
	for idx, col := range repo.InsertColumns {
		placeholders[idx] = ":" + col
	}

	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", repo.table, strings.Join(repo.InsertColumns, ", "), strings.Join(placeholders, ", "))

	_, err := repo.write(ctx, scope, exec, "insert data", stmt, model)

	return err
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) error {
	return repo.insert(ctx, repo.db.Write, model)
}

func (repo *Repository[T]) InsertTx(ctx context.Context, sqltx *sqlx.Tx, model T) error {
	return repo.insert(ctx, sqltx, model)
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.scope(ctx, "Exist")
	defer scope.End()

	clause, args := where(filter)
	if clause == "" {
		return false, errRequiredFilter
	}

	exist := false

	if err := repo.read(ctx, scope, fmt.Sprintf("SELECT EXISTS(%s)", query("SELECT 1 FROM", repo.table, clause)), args, &exist, false); err != nil {
		return false, repo.fail(scope, "check exist data", err)
	}

	return exist, nil
}

// Get returns the zero T when nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error) {
	ctx, scope := repo.scope(ctx, "Get")
	defer scope.End()

	clause, args := where(filter)

	var model T

	err := repo.read(ctx, scope, query("SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, clause), args, &model, false)
	if errors.Is(err, sql.ErrNoRows) {
		return model, nil
	}

	if err != nil {
		return model, repo.fail(scope, "get data", err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error) {
	ctx, scope := repo.scope(ctx, "GetAll")
	defer scope.End()

	clause, args := where(filter)

	var ordering, pagination string

	if params.SortBy != "" && params.SortDir != "" {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		pagination = "LIMIT :limit"

		if params.Page > 0 {
			args["offset"] = params.Offset()
			pagination += " OFFSET :offset"
		}
	}

	var models []T

	stmt := query("SELECT", repo.selectList(columns...), "FROM", repo.table, repo.join, clause, ordering, pagination)
	if err := repo.read(ctx, scope, stmt, args, &models, true); err != nil {
		return models, repo.fail(scope, "get all data", err)
	}

	return models, nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (int, error) {
	ctx, scope := repo.scope(ctx, "Count")
	defer scope.End()

	clause, args := where(filter)

	var count int

	stmt := query(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", repo.table, repo.primaryColumn, repo.table), repo.join, clause)
	if err := repo.read(ctx, scope, stmt, args, &count, false); err != nil {
		return 0, repo.fail(scope, "count data", err)
	}

	return count, nil
}

// DeleteTx removes the matching rows and returns how many went. It refuses to run without a filter.
func (repo *Repository[T]) DeleteTx(ctx context.Context, sqltx *sqlx.Tx, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.scope(ctx, "DeleteTx")
	defer scope.End()

	clause, args := where(filter)
	if clause == "" {
		return 0, errRequiredFilter
	}

	return repo.write(ctx, scope, sqltx, "delete data", query("DELETE FROM", repo.table, clause), args)
}

// Update sets the given columns on every matching row and refuses to run without a filter.
func (repo *Repository[T]) Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error {
	ctx, scope := repo.scope(ctx, "Update")
	defer scope.End()

	clause, args := where(filter)
	if clause == "" {
		return errRequiredFilter
	}

	assignments := []string{}
	for _, col := range slices.Sorted(maps.Keys(mod)) {
		assignments = append(assignments, fmt.Sprintf("%s = :%s", col, col))
	}

	maps.Copy(args, mod)

	stmt := query("UPDATE", repo.table, "SET", strings.Join(assignments, ", "), clause)

	_, err := repo.write(ctx, scope, repo.db.Write, "update data", stmt, args)

	return err
}

func (repo *Repository[T]) selectList(only ...string) string {
	columns := []string{}

	for _, col := range repo.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		columns = append(columns, col.selectExpr())
	}

	return strings.Join(columns, ", ")
}

func getColumns(table string, reflectType reflect.Type) (columns []column, insertColumns []string) {
	for i := range reflectType.NumField() {
		field := reflectType.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			col, insertCol := getColumns(table, field.Type)
			columns = append(columns, col...)
			insertColumns = append(insertColumns, insertCol...)

			continue
		}

		dbTag := field.Tag.Get("db")
		if dbTag == "" {
			continue
		}

		tableField := field.Tag.Get("table")
		if tableField == "" {
			tableField = table
			insertColumns = append(insertColumns, dbTag)
		}

		if colTag := field.Tag.Get("column"); colTag != "" {
			columns = append(columns, column{name: colTag, table: tableField, alias: dbTag})
		} else {
			columns = append(columns, column{name: dbTag, table: tableField})
		}
	}

	return columns, insertColumns
}
