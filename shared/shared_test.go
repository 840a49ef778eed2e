package shared_test

import (
	"context"
	"errors"
	"fmt"
	"galpao/shared"
	cacheMocks "galpao/shared/cache/mocks"
	"galpao/shared/constant"
	"galpao/shared/dto"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, expected int
	}{
		{0, 10, 1},
		{100, 0, 1},
		{100, -5, 1},
		{100, 10, 10},
		{101, 10, 11},
		{3, 50, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
	}
}

type updateStudent struct {
	Payment string `db:"payment"`
	Credits int    `db:"credits"`
	Ignored string
}

func TestTransformFields(t *testing.T) {
	fields := shared.TransformFields(updateStudent{Payment: "pix", Ignored: "x"}, "admin")

	assert.Equal(t, "pix", fields["payment"])
	assert.NotContains(t, fields, "credits")
	assert.NotContains(t, fields, "Ignored")
	assert.Equal(t, "admin", fields[constant.FieldModifiedBy])
	assert.Contains(t, fields, constant.FieldModifiedAt)
}

func TestFilterByField(t *testing.T) {
	filter := shared.FilterByField("Ana", "name", "students")
	where, args := filter.GetWhereClause()

	assert.Equal(t, "(students.name = :name)", where)
	assert.Equal(t, map[string]any{"name": "Ana"}, args)

	byID := shared.FilterByID("id-1", "id", "students")
	where, args = byID.GetWhereClause()

	assert.Equal(t, "(students.id = :id)", where)
	assert.Equal(t, "id-1", args["id"])
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "checkin:summary:2024-05-01", shared.BuildCacheKey("checkin:summary", "2024-05-01"))
	assert.Equal(t, "student:gets", shared.BuildCacheKey("student:gets"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	first := shared.BuildCacheKeyWithQuery("student:gets", params, shared.FilterByField("Ana", "name", "students"))
	same := shared.BuildCacheKeyWithQuery("student:gets", params, shared.FilterByField("Ana", "name", "students"))
	other := shared.BuildCacheKeyWithQuery("student:gets", params, shared.FilterByField("Bia", "name", "students"))

	assert.Equal(t, first, same)
	assert.NotEqual(t, first, other)
	assert.Contains(t, first, "student:gets:")
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	mockCache.EXPECT().Clear(gomock.Any(), "checkin:summary*").Return(nil)
	shared.InvalidateCaches(context.Background(), mockCache, "checkin:summary")

	mockCache.EXPECT().Clear(gomock.Any(), "student*").Return(errors.New("redis down"))
	shared.InvalidateCaches(context.Background(), mockCache, "student")
}

func TestIsPqError(t *testing.T) {
	unique := fmt.Errorf("failed to insert data (checkin): %w", &pq.Error{Code: "23505"})

	assert.True(t, shared.IsPqError(unique, constant.PqErrorCodeUniqueViolation))
	assert.False(t, shared.IsPqError(unique, constant.PqErrorCodeCheckViolation))
	assert.False(t, shared.IsPqError(errors.New("plain"), constant.PqErrorCodeUniqueViolation))
}
